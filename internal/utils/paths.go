package utils

import "path/filepath"

// StdStream is the path that stands for stdin or stdout.
const StdStream = "-"

// ResolvePath resolves path relative to baseDir. Absolute paths, the empty
// path and StdStream are returned unchanged.
func ResolvePath(path, baseDir string) string {
	if path == "" || path == StdStream || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResolvePaths applies [ResolvePath] to every element of paths.
func ResolvePaths(paths []string, baseDir string) []string {
	if len(paths) == 0 {
		return nil
	}

	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		resolved = append(resolved, ResolvePath(path, baseDir))
	}
	return resolved
}

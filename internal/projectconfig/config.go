// Package projectconfig provides the ProjectConfig struct and loader for
// .quizlens.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/quizlens/internal/utils"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".quizlens.yaml"

// EnvFileName is loaded next to the configuration file, or from the start
// directory when there is no configuration file.
const EnvFileName = ".env"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultQuizPath       = "QuizEndpoint.json"
	DefaultAPIPath        = "APIendpoint.json"
	DefaultSubmissionPath = "QuizSubmissiondata.json"

	DefaultReportFormat = "text"
	DefaultReportOutput = "-"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// maxWalkUp bounds the directory walk in findConfigFile.
const maxWalkUp = 10

// PathsConfig holds the input document paths. Relative paths are resolved
// against the directory of the configuration file.
type PathsConfig struct {
	Quiz       string `yaml:"quiz,omitempty" validate:"required"`
	API        string `yaml:"api,omitempty" validate:"required"`
	Submission string `yaml:"submission,omitempty" validate:"required"`
}

// ReportConfig selects the report format and destination ("-" is stdout).
type ReportConfig struct {
	Format string `yaml:"format,omitempty" validate:"oneof=text json markdown html xlsx junit"`
	Output string `yaml:"output,omitempty" validate:"required"`
}

// ValidationConfig controls schema validation of the inputs.
type ValidationConfig struct {
	Strict *bool `yaml:"strict,omitempty"`
}

// LogConfig holds slog settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" validate:"oneof=debug info warn error"`
	Format string `yaml:"format,omitempty" validate:"oneof=text json"`
}

// ProjectConfig is the top-level configuration loaded from .quizlens.yaml.
type ProjectConfig struct {
	Paths      PathsConfig      `yaml:"paths,omitempty"`
	Report     ReportConfig     `yaml:"report,omitempty"`
	Validation ValidationConfig `yaml:"validation,omitempty"`
	Log        LogConfig        `yaml:"log,omitempty"`

	// Dir is the directory the configuration was loaded from. Empty when
	// no file was found.
	Dir string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Quiz:       DefaultQuizPath,
			API:        DefaultAPIPath,
			Submission: DefaultSubmissionPath,
		},
		Report: ReportConfig{
			Format: DefaultReportFormat,
			Output: DefaultReportOutput,
		},
		Validation: ValidationConfig{
			Strict: utils.Ptr(false),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load finds .quizlens.yaml by walking up from startDir (max 10 levels),
// unmarshals it, fills in missing fields with defaults and validates the
// result. If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Dir = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile loads EnvFileName from dir into the process environment.
// Variables that are already set keep their value. A missing file is not
// an error.
func LoadEnvFile(dir string) error {
	p := filepath.Join(dir, EnvFileName)
	if err := godotenv.Load(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", p, err)
	}
	return nil
}

// findConfigFile walks up from dir looking for .quizlens.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxWalkUp {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Quiz != "" {
		dst.Paths.Quiz = src.Paths.Quiz
	}
	if src.Paths.API != "" {
		dst.Paths.API = src.Paths.API
	}
	if src.Paths.Submission != "" {
		dst.Paths.Submission = src.Paths.Submission
	}

	if src.Report.Format != "" {
		dst.Report.Format = strings.ToLower(src.Report.Format)
	}
	if src.Report.Output != "" {
		dst.Report.Output = src.Report.Output
	}

	if src.Validation.Strict != nil {
		dst.Validation.Strict = src.Validation.Strict
	}

	if src.Log.Level != "" {
		dst.Log.Level = strings.ToLower(src.Log.Level)
	}
	if src.Log.Format != "" {
		dst.Log.Format = strings.ToLower(src.Log.Format)
	}
}

// StrictValidation reports whether inputs are schema-validated before analysis.
func (c *ProjectConfig) StrictValidation() bool {
	return c.Validation.Strict != nil && *c.Validation.Strict
}

// InputPaths returns the quiz, api and submission paths resolved against
// the configuration directory.
func (c *ProjectConfig) InputPaths() (quiz, api, submission string) {
	resolved := utils.ResolvePaths([]string{c.Paths.Quiz, c.Paths.API, c.Paths.Submission}, c.baseDir())
	return resolved[0], resolved[1], resolved[2]
}

// OutputPath returns the report destination resolved against the
// configuration directory. "-" (stdout) is returned unchanged.
func (c *ProjectConfig) OutputPath() string {
	return utils.ResolvePath(c.Report.Output, c.baseDir())
}

func (c *ProjectConfig) baseDir() string {
	if c.Dir == "" {
		return "."
	}
	return c.Dir
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML key so messages match the file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field constraints and returns one error listing every
// violation.
func (c *ProjectConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "ProjectConfig.report.format"; drop the root.
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

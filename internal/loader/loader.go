// Package loader reads the quiz, API and submission documents from disk.
package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spboyer/quizlens/internal/jsonvalue"
	"github.com/spboyer/quizlens/internal/validation"
)

// Paths locates the three input documents.
type Paths struct {
	Quiz       string
	API        string
	Submission string
}

// Documents holds the parsed input documents.
type Documents struct {
	Quiz jsonvalue.Value
	API  jsonvalue.Value
	// Submission is parsed and validated but not analysed.
	Submission jsonvalue.Value
}

// DataLoadError reports a read, parse or schema failure for one of the
// input documents. A failed load never returns partial documents.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("data loading error: %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

type options struct {
	validateSchema bool
}

// Option configures [Load].
type Option func(*options)

// WithSchemaValidation checks every document against its embedded JSON
// Schema after parsing.
func WithSchemaValidation() Option {
	return func(o *options) { o.validateSchema = true }
}

// Load reads and parses all three documents.
func Load(paths Paths, opts ...Option) (*Documents, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	docs := &Documents{}
	targets := []struct {
		doc  validation.Document
		path string
		dst  *jsonvalue.Value
	}{
		{validation.DocumentQuiz, paths.Quiz, &docs.Quiz},
		{validation.DocumentAPI, paths.API, &docs.API},
		{validation.DocumentSubmission, paths.Submission, &docs.Submission},
	}

	for _, target := range targets {
		v, err := loadOne(target.doc, target.path, o)
		if err != nil {
			return nil, err
		}
		*target.dst = v
	}

	return docs, nil
}

// LoadDocument reads and parses a single document. Failures are reported
// as *DataLoadError like [Load].
func LoadDocument(doc validation.Document, path string, opts ...Option) (jsonvalue.Value, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return loadOne(doc, path, o)
}

func loadOne(doc validation.Document, path string, o options) (jsonvalue.Value, error) {
	v, err := loadDocument(path)
	if err != nil {
		return jsonvalue.Value{}, &DataLoadError{Path: path, Err: err}
	}
	if o.validateSchema {
		if err := validation.Validate(doc, v.Interface()); err != nil {
			return jsonvalue.Value{}, &DataLoadError{Path: path, Err: err}
		}
	}
	slog.Debug("Loaded document", "document", doc, "path", path, "kind", v.Kind())
	return v, nil
}

func loadDocument(path string) (jsonvalue.Value, error) {
	if strings.TrimSpace(path) == "" {
		return jsonvalue.Value{}, errors.New("no path given")
	}

	data, err := readFile(path)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	return jsonvalue.Parse(data)
}

// readFile returns the file contents, decompressing paths ending in .gz.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close() //nolint:errcheck
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	return data, nil
}

// FileSource loads documents from the file system.
type FileSource struct {
	Paths   Paths
	Options []Option
}

// Load implements pipeline.Source.
func (s FileSource) Load() (*Documents, error) {
	return Load(s.Paths, s.Options...)
}

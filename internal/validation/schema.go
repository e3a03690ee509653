package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spboyer/quizlens/schemas"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Document names one of the three input documents.
type Document string

const (
	DocumentQuiz       Document = "quiz"
	DocumentAPI        Document = "api"
	DocumentSubmission Document = "submission"
)

// printer renders violation messages.
var printer = message.NewPrinter(language.English)

// schemaFiles maps each document to its embedded schema resource.
var schemaFiles = []struct {
	doc  Document
	name string
	raw  string
}{
	{DocumentQuiz, "quiz.schema.json", schemas.QuizSchemaJSON},
	{DocumentAPI, "api.schema.json", schemas.APISchemaJSON},
	{DocumentSubmission, "submission.schema.json", schemas.SubmissionSchemaJSON},
}

var compiled = compileAll()

// compileAll registers every embedded schema with one compiler and
// compiles them. A broken embedded schema is a build defect, so it panics.
func compileAll() map[Document]*jsonschema.Schema {
	c := jsonschema.NewCompiler()
	for _, f := range schemaFiles {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(f.raw))
		if err != nil {
			panic(fmt.Sprintf("validation: decoding %s: %v", f.name, err))
		}
		if err := c.AddResource(f.name, doc); err != nil {
			panic(fmt.Sprintf("validation: registering %s: %v", f.name, err))
		}
	}

	out := make(map[Document]*jsonschema.Schema, len(schemaFiles))
	for _, f := range schemaFiles {
		sch, err := c.Compile(f.name)
		if err != nil {
			panic(fmt.Sprintf("validation: compiling %s: %v", f.name, err))
		}
		out[f.doc] = sch
	}
	return out
}

// SchemaError reports every schema violation found in one document.
type SchemaError struct {
	Document   Document
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s document does not match schema: %s", e.Document, strings.Join(e.Violations, "; "))
}

// Validate checks instance, in the plain form produced by encoding/json,
// against the schema of doc. It returns a *SchemaError listing the
// violations, or nil.
func Validate(doc Document, instance any) error {
	sch, ok := compiled[doc]
	if !ok {
		return fmt.Errorf("no schema for document %q", doc)
	}

	err := sch.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Document: doc, Violations: []string{err.Error()}}
	}
	return &SchemaError{Document: doc, Violations: leafViolations(ve, nil)}
}

// leafViolations appends one "pointer: message" line per leaf cause of ve.
func leafViolations(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			out = leafViolations(cause, out)
		}
		return out
	}
	pointer := "/" + strings.Join(ve.InstanceLocation, "/")
	return append(out, pointer+": "+ve.ErrorKind.LocalizedString(printer))
}

// Package schemas embeds the JSON Schemas for the three input documents.
package schemas

import _ "embed"

//go:embed quiz.schema.json
var QuizSchemaJSON string

//go:embed api.schema.json
var APISchemaJSON string

//go:embed submission.schema.json
var SubmissionSchemaJSON string

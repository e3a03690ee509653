package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spboyer/quizlens/internal/loader"
	"github.com/spboyer/quizlens/internal/projectconfig"
	"github.com/spboyer/quizlens/internal/validation"
)

func newValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the input documents against the built-in JSON schemas",
		Long: `Check the input documents against the built-in JSON schemas.

Every document is checked, and every violation is listed, so all problems
can be fixed in one pass. Exits with status 1 when any document fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, a.settings)
		},
	}

	addInputFlags(cmd)

	return cmd
}

func runValidate(cmd *cobra.Command, settings *projectconfig.ProjectConfig) error {
	quiz, api, submission := settings.InputPaths()
	docs := []struct {
		doc  validation.Document
		path string
	}{
		{validation.DocumentQuiz, quiz},
		{validation.DocumentAPI, api},
		{validation.DocumentSubmission, submission},
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, d := range docs {
		_, err := loader.LoadDocument(d.doc, d.path, loader.WithSchemaValidation())
		if err == nil {
			fmt.Fprintf(out, "✓ %s (%s)\n", d.doc, d.path)
			continue
		}

		failed++
		var schemaErr *validation.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Fprintf(out, "✗ %s (%s): %d violation(s)\n", d.doc, d.path, len(schemaErr.Violations))
			for _, v := range schemaErr.Violations {
				fmt.Fprintf(out, "    %s\n", v)
			}
			continue
		}
		fmt.Fprintf(out, "✗ %s (%s): %v\n", d.doc, d.path, errors.Unwrap(err))
	}

	if failed > 0 {
		return &ValidationFailedError{Failed: failed}
	}
	return nil
}

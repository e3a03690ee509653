package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spboyer/quizlens/internal/loader"
	"github.com/spboyer/quizlens/internal/models"
	"github.com/spboyer/quizlens/internal/pipeline"
	"github.com/spboyer/quizlens/internal/projectconfig"
	"github.com/spboyer/quizlens/internal/reporting"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze quiz performance and write a report",
		Long: `Analyze quiz performance and write a report.

Loads the quiz metadata, submission history and submission documents,
summarizes scores by topic and difficulty, computes per-topic accuracy,
flags weak topics and performance gaps, and writes study recommendations.

Paths default to the values in .quizlens.yaml. Every flag can also be set
with a QUIZLENS_* environment variable (for example QUIZLENS_FORMAT=json).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, a.settings)
		},
	}

	addInputFlags(cmd)
	cmd.Flags().StringP(keyFormat, "f", "", fmt.Sprintf("Report format: %v (default from config: text)", reporting.Formats()))
	cmd.Flags().StringP(keyOutput, "o", "", `Report destination file, "-" for stdout (default from config: -)`)
	cmd.Flags().Bool(keyStrict, false, "Validate inputs against the built-in JSON schemas before analysis")

	return cmd
}

// addInputFlags registers the three document path flags.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String(keyQuiz, "", "Quiz metadata JSON file (default from config: "+projectconfig.DefaultQuizPath+")")
	cmd.Flags().String(keyAPI, "", "Submission history JSON file (default from config: "+projectconfig.DefaultAPIPath+")")
	cmd.Flags().String(keySubmission, "", "Submission payload JSON file (default from config: "+projectconfig.DefaultSubmissionPath+")")
}

func runAnalyze(cmd *cobra.Command, settings *projectconfig.ProjectConfig) error {
	format, err := reporting.ParseFormat(settings.Report.Format)
	if err != nil {
		return err
	}

	var opts []loader.Option
	if settings.StrictValidation() {
		opts = append(opts, loader.WithSchemaValidation())
	}

	quiz, api, submission := settings.InputPaths()
	result, err := pipeline.AnalyzeFiles(loader.Paths{Quiz: quiz, API: api, Submission: submission}, opts...)
	if err != nil {
		return err
	}

	return writeReport(cmd, result, format, settings.Report.Output)
}

func writeReport(cmd *cobra.Command, result *models.AnalysisResult, format reporting.Format, output string) (err error) {
	if output == "-" {
		w := cmd.OutOrStdout()
		if format.Binary() && isTerminal(w) {
			return fmt.Errorf("refusing to write %s report to a terminal; use --output", format)
		}
		return reporting.Write(w, result, format)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report file: %w", cerr)
		}
	}()

	if err := reporting.Write(f, result, format); err != nil {
		return err
	}
	slog.Info("Wrote report", "path", output, "format", format)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	scenarioQuiz       = `[{"topic": "Math", "score": 50, "correct_option": "A"}]`
	scenarioAPI        = `[{"quiz_id": "q1", "topics": ["Math"], "response_map": {"Q1": "A"}}]`
	scenarioSubmission = `{"quiz_id": "q1"}`
)

// writeInputs writes the three documents under their default names.
func writeInputs(t *testing.T, dir, quiz, api, submission string) {
	t.Helper()
	writeFile(t, dir, "QuizEndpoint.json", quiz)
	writeFile(t, dir, "APIendpoint.json", api)
	writeFile(t, dir, "QuizSubmissiondata.json", submission)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// runCLI executes the root command with args and returns what it wrote to
// stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

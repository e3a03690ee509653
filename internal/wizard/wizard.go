package wizard

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/quizlens/internal/projectconfig"
	"github.com/spboyer/quizlens/internal/reporting"
	"github.com/spboyer/quizlens/internal/utils"
)

// Answers holds all fields collected during the init wizard.
type Answers struct {
	QuizPath       string
	APIPath        string
	SubmissionPath string
	Format         string
	Strict         bool
}

// DefaultAnswers pre-populates the wizard from cfg.
func DefaultAnswers(cfg *projectconfig.ProjectConfig) Answers {
	return Answers{
		QuizPath:       cfg.Paths.Quiz,
		APIPath:        cfg.Paths.API,
		SubmissionPath: cfg.Paths.Submission,
		Format:         cfg.Report.Format,
		Strict:         cfg.StrictValidation(),
	}
}

const configHeader = `# quizlens project configuration.
# Relative paths are resolved against the directory of this file.
`

// RunInitWizard runs an interactive huh form to collect the project
// configuration, starting from defaults.
func RunInitWizard(in io.Reader, out io.Writer, defaults Answers) (*Answers, error) {
	a := defaults

	formatOptions := make([]huh.Option[string], 0, len(reporting.Formats()))
	for _, f := range reporting.Formats() {
		formatOptions = append(formatOptions, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quiz metadata file").
				Description("JSON list of quiz records (.gz is fine)").
				Placeholder(projectconfig.DefaultQuizPath).
				Value(&a.QuizPath).
				Validate(requirePath),
			huh.NewInput().
				Title("Submission history file").
				Description("JSON list of past quiz submissions").
				Placeholder(projectconfig.DefaultAPIPath).
				Value(&a.APIPath).
				Validate(requirePath),
			huh.NewInput().
				Title("Current submission file").
				Placeholder(projectconfig.DefaultSubmissionPath).
				Value(&a.SubmissionPath).
				Validate(requirePath),
			huh.NewSelect[string]().
				Title("Report format").
				Options(formatOptions...).
				Value(&a.Format),
			huh.NewConfirm().
				Title("Validate inputs against the built-in schemas?").
				Value(&a.Strict),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	a.QuizPath = strings.TrimSpace(a.QuizPath)
	a.APIPath = strings.TrimSpace(a.APIPath)
	a.SubmissionPath = strings.TrimSpace(a.SubmissionPath)
	return &a, nil
}

func requirePath(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// Config applies the answers on top of base and returns the result.
func (a *Answers) Config(base *projectconfig.ProjectConfig) *projectconfig.ProjectConfig {
	cfg := *base
	cfg.Paths = projectconfig.PathsConfig{
		Quiz:       a.QuizPath,
		API:        a.APIPath,
		Submission: a.SubmissionPath,
	}
	cfg.Report.Format = a.Format
	cfg.Validation.Strict = utils.Ptr(a.Strict)
	return &cfg
}

// GenerateConfigYAML renders cfg as a .quizlens.yaml document. The config is
// validated first so the wizard never writes a file Load would reject.
func GenerateConfigYAML(cfg *projectconfig.ProjectConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid configuration: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return buf.String(), nil
}

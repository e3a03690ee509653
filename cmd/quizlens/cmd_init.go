package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/quizlens/internal/projectconfig"
	"github.com/spboyer/quizlens/internal/wizard"
)

func newInitCommand(a *app) *cobra.Command {
	var force, acceptDefaults bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + projectconfig.FileName + " project configuration",
		Long: `Create a .quizlens.yaml project configuration.

Prompts for the input document paths, the report format and whether inputs
are schema-validated. Answers default to the current configuration. Use
--yes to write the defaults without prompting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, a, force, acceptDefaults)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+projectconfig.FileName)
	cmd.Flags().BoolVarP(&acceptDefaults, "yes", "y", false, "Accept the defaults without prompting")

	return cmd
}

func runInit(cmd *cobra.Command, a *app, force, acceptDefaults bool) error {
	target := filepath.Join(a.projectDir, projectconfig.FileName)
	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", target)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", target, err)
	}

	answers := wizard.DefaultAnswers(a.project)
	if !acceptDefaults {
		got, err := wizard.RunInitWizard(cmd.InOrStdin(), cmd.OutOrStdout(), answers)
		if err != nil {
			return err
		}
		answers = *got
	}

	content, err := wizard.GenerateConfigYAML(answers.Config(a.project))
	if err != nil {
		return err
	}

	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spboyer/quizlens/internal/projectconfig"
	"github.com/spboyer/quizlens/internal/utils"
)

var version = "dev"

// app carries state resolved once per invocation by the root command.
type app struct {
	// projectDir is where .quizlens.yaml lookup starts.
	projectDir string
	// project is the file configuration merged onto defaults.
	project *projectconfig.ProjectConfig
	// settings layers flags and environment over project.
	settings *projectconfig.ProjectConfig
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "quizlens",
		Short: "quizlens - quiz performance analytics",
		Long: `quizlens analyzes quiz results.

It reads quiz metadata, historical submissions and a submission payload,
summarizes scores by topic and difficulty, measures answer accuracy, flags
weak topics and writes study recommendations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	cmd.PersistentFlags().StringVarP(&a.projectDir, "project-dir", "C", "", "Directory to search for "+projectconfig.FileName+" (default: current directory)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := a.load(cmd); err != nil {
			return err
		}
		return setupLogging(cmd, a.settings, *debugLogging)
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCommand(a))
	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newInitCommand(a))

	return cmd
}

// load reads the project configuration and .env file, then resolves the
// effective settings for cmd.
func (a *app) load(cmd *cobra.Command) error {
	if a.projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		a.projectDir = wd
	}

	project, err := projectconfig.Load(a.projectDir)
	if err != nil {
		return err
	}
	if project.Dir == "" {
		project.Dir = a.projectDir
	}
	a.project = project

	if err := projectconfig.LoadEnvFile(project.Dir); err != nil {
		return err
	}

	settings, err := resolveSettings(cmd, project)
	if err != nil {
		return err
	}
	a.settings = settings
	return nil
}

func setupLogging(cmd *cobra.Command, settings *projectconfig.ProjectConfig, debug bool) error {
	level, err := utils.ParseLogLevel(settings.Log.Level)
	if err != nil {
		return err
	}
	if debug {
		level = slog.LevelDebug
	}
	handler, err := utils.NewLogHandler(cmd.ErrOrStderr(), level, settings.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

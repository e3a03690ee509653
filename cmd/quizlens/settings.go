package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spboyer/quizlens/internal/projectconfig"
	"github.com/spboyer/quizlens/internal/utils"
)

// envPrefix namespaces environment overrides, e.g. QUIZLENS_FORMAT or
// QUIZLENS_LOG_LEVEL.
const envPrefix = "QUIZLENS"

// Setting keys. Each one is also a flag name on the commands that accept it.
const (
	keyQuiz       = "quiz"
	keyAPI        = "api"
	keySubmission = "submission"
	keyFormat     = "format"
	keyOutput     = "output"
	keyStrict     = "strict"
	keyLogLevel   = "log-level"
	keyLogFormat  = "log-format"
)

// viperForCmd binds a command's flags and environment to a fresh viper
// instance with the project configuration as defaults.
func viperForCmd(cmd *cobra.Command, project *projectconfig.ProjectConfig) *viper.Viper {
	v := viper.New()

	// Paths from the config file are relative to the file; flag and
	// environment paths are relative to the working directory.
	quiz, api, submission := project.InputPaths()
	v.SetDefault(keyQuiz, quiz)
	v.SetDefault(keyAPI, api)
	v.SetDefault(keySubmission, submission)
	v.SetDefault(keyFormat, project.Report.Format)
	v.SetDefault(keyOutput, project.OutputPath())
	v.SetDefault(keyStrict, project.StrictValidation())
	v.SetDefault(keyLogLevel, project.Log.Level)
	v.SetDefault(keyLogFormat, project.Log.Format)

	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// resolveSettings returns the effective configuration for cmd: flags, then
// QUIZLENS_* environment variables, then the project file, then defaults.
func resolveSettings(cmd *cobra.Command, project *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	v := viperForCmd(cmd, project)

	settings := &projectconfig.ProjectConfig{
		Paths: projectconfig.PathsConfig{
			Quiz:       v.GetString(keyQuiz),
			API:        v.GetString(keyAPI),
			Submission: v.GetString(keySubmission),
		},
		Report: projectconfig.ReportConfig{
			Format: strings.ToLower(v.GetString(keyFormat)),
			Output: v.GetString(keyOutput),
		},
		Validation: projectconfig.ValidationConfig{
			Strict: utils.Ptr(v.GetBool(keyStrict)),
		},
		Log: projectconfig.LogConfig{
			Level:  strings.ToLower(v.GetString(keyLogLevel)),
			Format: strings.ToLower(v.GetString(keyLogFormat)),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/adapters/filesystem"
	"github.com/felixgeelhaar/makeflow/internal/adapters/logging"
	"github.com/felixgeelhaar/makeflow/internal/app"
	"github.com/felixgeelhaar/makeflow/internal/config"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// session is what every command starts from: an application wired to the
// command's writers plus the load options.
type session struct {
	app    *app.Makeflow
	logger ports.Logger
	opts   app.LoadOptions
}

// newSession merges the settings file, the environment and the command line,
// in that order of precedence from lowest to highest.
func newSession(cmd *cobra.Command) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	fs := filesystem.NewRealFileSystem()
	cfg, err := config.NewLoader(fs, os.Getenv).Load(cwd, cfgFile)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	logger := newLogger(cfg, cmd.ErrOrStderr())
	catalog := actions.NewCatalog(actions.Deps{
		FS:     fs,
		Stdout: out,
		Stderr: cmd.ErrOrStderr(),
	})

	return &session{
		app: app.New(out).
			WithFileSystem(fs).
			WithCatalog(catalog).
			WithLogger(logger).
			WithVersion(version),
		logger: logger,
		opts: app.NewLoadOptions(cwd).
			WithFile(cfg.Build.File).
			WithStrict(cfg.Build.Strict).
			WithChdir(cfg.Build.Chdir).
			WithDryRun(dryRun).
			WithFailOnMissing(cfg.Build.FailOnMissing),
	}, nil
}

// applyFlags copies explicitly set flags over the loaded settings.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Build.File = buildFile
	}
	if flags.Changed("strict") {
		cfg.Build.Strict = strict
	}
	if flags.Changed("chdir") {
		cfg.Build.Chdir = chdir
	}
	if flags.Changed("fail-on-missing") {
		cfg.Build.FailOnMissing = failOnMissing
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	switch {
	case flags.Changed("log-level"):
		cfg.Log.Level = logLevel
	case verbose:
		cfg.Log.Level = "debug"
	}
}

func newLogger(cfg config.Config, w io.Writer) ports.Logger {
	return logging.NewConsoleLogger(
		logging.WithOutput(w),
		logging.WithLevel(cfg.LogLevel()),
		logging.WithJSONFormat(cfg.JSONLogs()),
		logging.WithTimestamp(cfg.Log.Timestamps),
	)
}

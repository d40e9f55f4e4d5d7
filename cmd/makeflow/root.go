package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/makeflow/internal/buildfile"
	"github.com/felixgeelhaar/makeflow/internal/config"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

var (
	// Global flags
	cfgFile       string
	buildFile     string
	verbose       bool
	strict        bool
	chdir         bool
	dryRun        bool
	failOnMissing bool
	logLevel      string
	logFormat     string
)

var rootCmd = &cobra.Command{
	Use:   "makeflow [targets...]",
	Short: "A dependency-driven build runner",
	Long: `Makeflow loads a tree of build files, resolves the dependencies of the
requested targets and runs their actions in order.

With no targets every registered target is built. Build files are looked up
as makeflow.hcl, makeflow.yaml, makeflow.yml or makeflow.toml.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runBuild,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command. An interrupt cancels the running build.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "settings file (default: "+config.FileName+" if present)")
	flags.StringVarP(&buildFile, "file", "f", "", "root build file or project directory")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&strict, "strict", false, "report dependency cycles as errors")
	flags.BoolVar(&chdir, "chdir", false, "switch the working directory while targets run")
	flags.BoolVar(&dryRun, "dry-run", false, "show what would be built without running actions")
	flags.BoolVar(&failOnMissing, "fail-on-missing", false, "abort when a dependency is not defined")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (text, json)")

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Error()
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}

	msg := err.Error()
	if s := suggestionOf(err); s != "" {
		msg += fmt.Sprintf("\n\nSuggestion: %s", s)
	}
	return msg
}

// suggestionOf finds the suggestion carried by a build error, if any.
func suggestionOf(err error) string {
	var targetErr *target.Error
	if errors.As(err, &targetErr) {
		return targetErr.Suggestion
	}
	var fileErr *buildfile.Error
	if errors.As(err, &fileErr) {
		return fileErr.Suggestion
	}
	return ""
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("file", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"hcl", "yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"text\tHuman readable lines",
			"json\tOne JSON object per line",
		}, cobra.ShellCompDirectiveNoFileComp
	})
}

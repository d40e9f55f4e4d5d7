package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [targets...]",
	Short: "Build targets and their dependencies",
	Long: `Run builds the named targets after everything they depend on. With no
targets every registered target is built.

Use run when a target shares its name with a makeflow command.

Examples:
  makeflow run list
  makeflow run --dry-run all
  makeflow run -f ci/makeflow.hcl test`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	report, err := s.app.Run(cmd.Context(), s.opts, args)
	if len(report.Results) > 0 {
		s.app.PrintResults(report)
	}
	return err
}

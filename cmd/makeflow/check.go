package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errCheckFailed is returned when check finds something to fix.
var errCheckFailed = errors.New("build check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the build files for missing dependencies and cycles",
	Long: `Check loads every build file and reports targets that depend on
undefined names, targets defined more than once and dependency cycles.

Exit codes:
  0 - All dependencies resolve
  1 - Problems found or the build files could not be loaded`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	result, err := s.app.Check(cmd.Context(), s.opts)
	if err != nil {
		return err
	}
	s.app.PrintCheck(result)

	if !result.OK() {
		return errCheckFailed
	}
	return nil
}

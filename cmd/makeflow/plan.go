package main

import (
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [targets...]",
	Short: "Show the order targets would be built in",
	Long: `Plan loads the build files and prints the resolved execution order
without running any action.

With --strict a dependency cycle is reported as an error instead of being
broken at the repeated target.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	seq, err := s.app.Plan(cmd.Context(), s.opts, args)
	if err != nil {
		return err
	}
	s.app.PrintPlan(seq)
	return nil
}

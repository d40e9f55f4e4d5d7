package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/makeflow/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose targets to build interactively",
	Args:  cobra.NoArgs,
	RunE:  runPick,
}

// runPicker is replaced in tests.
var runPicker = tui.RunPicker

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	b, err := s.app.Load(ctx, s.opts)
	if err != nil {
		return err
	}

	result, err := runPicker(ctx, b.Registry.Targets())
	if err != nil {
		return err
	}
	if result.Cancelled {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	report, err := b.Engine.Run(ctx, result.Selected, s.logger)
	if len(report.Results) > 0 {
		s.app.PrintResults(report)
	}
	return err
}

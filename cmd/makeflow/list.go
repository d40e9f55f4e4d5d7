package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the targets defined by the build files",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	b, err := s.app.Load(cmd.Context(), s.opts)
	if err != nil {
		return err
	}
	s.app.PrintList(b.Registry)
	return nil
}

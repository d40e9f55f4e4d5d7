package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/makeflow/internal/actions"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the built-in action kinds and their arguments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printActions(cmd, actions.NewCatalog(actions.Deps{}))
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}

func printActions(cmd *cobra.Command, catalog *actions.Catalog) {
	out := cmd.OutOrStdout()
	for _, kind := range catalog.Kinds() {
		def, _ := catalog.Lookup(kind)
		_, _ = fmt.Fprintf(out, "%-8s %s\n", kind, def.Summary)
		for _, p := range def.Params {
			flag := ""
			if p.Required {
				flag = ", required"
			}
			_, _ = fmt.Fprintf(out, "  %s (%s%s)\n", p.Name, p.Type, flag)
		}
	}
}

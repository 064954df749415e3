package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var match bool

	cmd := &cobra.Command{
		Use:   "normalize <ingredient>...",
		Short: "Print the canonical name of each ingredient line",
		Long: `Normalize strips quantities, units and preparation words from each
ingredient line and prints one canonical name per line. With --match the
food catalog match for each line is printed as JSON instead.

Examples:
  importer normalize "2 tbsp minced garlic" "1 cup chedar"
  importer normalize --match "2 cups chicken broth"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if match {
				return writeJSON(cmd.OutOrStdout(), a.importer.MatchIngredients(args))
			}
			for _, name := range a.importer.NormalizeIngredients(args) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&match, "match", false, "Print food catalog matches as JSON")
	return cmd
}

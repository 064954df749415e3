package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recipelift/backend/internal/domain"
)

func newImportCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import <url>",
		Short: "Import a recipe page and print the draft",
		Long: `Import fetches the page at <url> and prints the recipe draft as JSON.
With --file the HTML is read from disk and <url> is only recorded as the source.

Examples:
  importer import https://example.com/recipes/beef-stew
  importer import https://example.com/recipes/beef-stew --file stew.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				recipe *domain.ParsedRecipe
				err    error
			)
			if file != "" {
				body, readErr := os.ReadFile(file)
				if readErr != nil {
					return fmt.Errorf("reading %s: %w", file, readErr)
				}
				recipe, err = a.importer.ImportHTML(args[0], body)
			} else {
				recipe, err = a.importer.ImportFrom(cmd.Context(), args[0])
			}
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), recipe)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the page HTML from this file instead of fetching it")
	return cmd
}

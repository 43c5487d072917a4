package cli

import (
	"fmt"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the goal catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Catalog == nil {
				return fmt.Errorf("no goal catalog configured")
			}

			goals := app.Catalog.Goals
			if category != "" {
				filtered := goals[:0:0]
				for _, g := range goals {
					if g.Category == category {
						filtered = append(filtered, g)
					}
				}
				if len(filtered) == 0 {
					return fmt.Errorf("no catalog goals in category %q", category)
				}
				goals = filtered
			}

			fmt.Print(formatter.FormatCatalog(goals))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show goals in this category")

	return cmd
}

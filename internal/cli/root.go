package cli

import (
	"github.com/lucbaten/attune/internal/catalog"
	"github.com/lucbaten/attune/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Monitoring service.MonitoringService
	Insights   service.InsightService
	Advisor    service.AdvisorService
	Progress   service.ProgressService
	Catalog    *catalog.Catalog

	// IsInteractive gates prompts and the live console; nil means
	// non-interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "attune" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "attune",
		Short: "Therapeutic session monitor and goal advisor",
	}

	root.AddCommand(
		newSessionCmd(app),
		newConsoleCmd(app),
		newGoalCmd(app),
		newInsightsCmd(app),
		newConflictsCmd(app),
		newRecommendCmd(app),
		newInterventionCmd(app),
		newCatalogCmd(app),
		newPlanCmd(app),
		newStatusCmd(app),
	)

	return root
}

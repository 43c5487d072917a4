package cli

import (
	"context"
	"fmt"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Pick a goal selection interactively and vet it for conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("plan needs a terminal; use 'attune conflicts' and 'attune goal log' instead")
			}
			if app.Catalog == nil {
				return fmt.Errorf("no goal catalog configured")
			}

			return runPlanWizard(context.Background(), app, userID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the plan is for")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// runPlanWizard walks through goal selection, conflict vetting and tracking
// setup.
func runPlanWizard(ctx context.Context, app *App, userID string) error {
	existing, err := app.Progress.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	tracked := make(map[string]*domain.GoalProgress, len(existing))
	for _, g := range existing {
		tracked[g.GoalID] = g
	}

	var selected []string
	form := planSelectGoals(app, tracked, &selected)
	if form == nil {
		fmt.Println("Every catalog goal is already tracked.")
		return nil
	}
	if err := form.Run(); err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Println("Nothing selected.")
		return nil
	}

	// Vet the combined portfolio, not just the new picks.
	checkSet := make([]string, 0, len(tracked)+len(selected))
	for id, g := range tracked {
		if g.Status == domain.GoalInProgress || g.Status == domain.GoalNotStarted {
			checkSet = append(checkSet, id)
		}
	}
	checkSet = append(checkSet, selected...)

	report, err := app.Advisor.CheckConflicts(ctx, contract.ConflictRequest{
		Goals:  checkSet,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatConflictReport(report))
	fmt.Println()

	if !report.SafeToProceed {
		proceed := false
		if form := planConfirm("The selection is not safe as-is. Track it anyway?", &proceed); form != nil {
			if err := form.Run(); err != nil {
				return err
			}
		}
		if !proceed {
			fmt.Println("Cancelled. Adjust the selection and rerun 'attune plan'.")
			return nil
		}
	}

	confirm := false
	title := fmt.Sprintf("Start tracking %d goal(s)?", len(selected))
	if form := planConfirm(title, &confirm); form != nil {
		if err := form.Run(); err != nil {
			return err
		}
	}
	if !confirm {
		fmt.Println("Cancelled.")
		return nil
	}

	for _, goalID := range selected {
		if _, err := app.Progress.Log(ctx, contract.LogProgressRequest{
			UserID:   userID,
			GoalID:   goalID,
			Progress: 0,
			Note:     "added via plan",
		}); err != nil {
			return fmt.Errorf("tracking %s: %w", goalID, err)
		}
		fmt.Printf("Tracking %s\n", goalID)
	}

	fmt.Println(formatter.Dim("log progress with 'attune goal log --user " + userID + " --goal <id> --progress <pct>'"))
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "conflicts GOAL_ID...",
		Short: "Check a goal selection for risky combinations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Advisor.CheckConflicts(context.Background(), contract.ConflictRequest{
				Goals:  args,
				UserID: userID,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatConflictReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Escalate severity using this user's stored progress")

	return cmd
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the one-screen overview for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			goals, err := app.Progress.ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			live := app.Monitoring.LiveSessions(ctx)
			mine := make([]*domain.MonitoringSession, 0, len(live))
			for _, s := range live {
				if s.UserID == userID {
					mine = append(mine, s)
				}
			}

			pending, err := app.Monitoring.PendingInterventions(ctx, userID)
			if err != nil {
				return err
			}

			// The cached snapshot is fine here; status is a glance, not an
			// analysis pass.
			var risks []domain.RiskPrediction
			if insights, err := app.Insights.Insights(ctx, contract.InsightRequest{UserID: userID}); err == nil {
				risks = insights.Risks
			}

			fmt.Print(formatter.FormatStatus(formatter.StatusData{
				UserID:  userID,
				Goals:   goals,
				Live:    mine,
				Pending: pending,
				Risks:   risks,
				Now:     time.Now(),
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User to summarize")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

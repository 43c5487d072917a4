package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/spf13/cobra"
)

func newInsightsCmd(app *App) *cobra.Command {
	var userID string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show trends, risk outlook and projected outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Insights.Insights(context.Background(), contract.InsightRequest{
				UserID:  userID,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatInsights(resp, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User to analyze")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cached snapshot and recompute")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

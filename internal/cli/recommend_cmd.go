package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/spf13/cobra"
)

func newRecommendCmd(app *App) *cobra.Command {
	var userID string
	var max int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate personalized recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewRecommendRequest(userID)
			if cmd.Flags().Changed("max") {
				req.Max = max
			}

			set, err := app.Advisor.Recommend(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatRecommendations(set, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User to advise")
	cmd.Flags().IntVar(&max, "max", 5, "Maximum number of recommendations")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

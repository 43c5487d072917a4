package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/spf13/cobra"
)

func newConsoleCmd(app *App) *cobra.Command {
	var userID, sessionID string
	var goals []string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Live monitoring console",
		Long: `Open an interactive console on a monitoring session. Each line you type
is analyzed immediately; interventions and metric updates are pushed into
the transcript as they happen.

Without --session a new session is started and stopped when you leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("console needs a terminal; use 'attune session analyze' instead")
			}

			ctx := context.Background()
			ownSession := sessionID == ""
			if ownSession {
				session, err := app.Monitoring.Start(ctx, contract.StartSessionRequest{
					UserID: userID,
					Goals:  goals,
				})
				if err != nil {
					return err
				}
				sessionID = session.ID
			}

			events, err := app.Monitoring.Subscribe(sessionID)
			if err != nil {
				return err
			}

			model := newConsoleModel(app, sessionID, userID, events)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return err
			}

			if !ownSession {
				return nil
			}

			resp, err := app.Monitoring.Stop(ctx, sessionID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSessionSummary(resp.Session, resp.Metrics))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the session belongs to")
	cmd.Flags().StringVar(&sessionID, "session", "", "Attach to an existing session instead of starting one")
	cmd.Flags().StringSliceVar(&goals, "goal", nil, "Goal worked on in this session (repeatable)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

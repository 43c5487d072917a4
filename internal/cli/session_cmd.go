package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage monitoring sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionAnalyzeCmd(app),
		newSessionStopCmd(app),
		newSessionMetricsCmd(app),
		newSessionListCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	var userID, sessionID string
	var goals []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a monitoring session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Monitoring.Start(context.Background(), contract.StartSessionRequest{
				SessionID: sessionID,
				UserID:    userID,
				Goals:     goals,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Started session %s for %s\n", session.ID, session.UserID)
			fmt.Println(formatter.Dim("analyze input with 'attune session analyze --session " + session.ID + " --text ...'"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the session belongs to")
	cmd.Flags().StringVar(&sessionID, "id", "", "Session ID (generated when empty)")
	cmd.Flags().StringSliceVar(&goals, "goal", nil, "Goal worked on in this session (repeatable)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newSessionAnalyzeCmd(app *App) *cobra.Command {
	var sessionID, text string
	var responseMs int
	var support bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one utterance in a live session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewAnalyzeRequest(sessionID, text)
			req.ResponseTimeMs = responseMs
			req.SocialSupport = support

			resp, err := app.Monitoring.Analyze(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderBox("Reading", formatter.FormatReading(resp.State, resp.Assessment)))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID")
	cmd.Flags().StringVar(&text, "text", "", "Utterance text to analyze")
	cmd.Flags().IntVar(&responseMs, "response-ms", 0, "Client-side response latency in milliseconds")
	cmd.Flags().BoolVar(&support, "support", false, "Mark social support as present in this exchange")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newSessionStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop SESSION_ID",
		Short: "Stop a session and archive its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Monitoring.Stop(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatSessionSummary(resp.Session, resp.Metrics))
			fmt.Println()
			return nil
		},
	}
}

func newSessionMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics SESSION_ID",
		Short: "Show session metrics (live or archived)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Monitoring.Metrics(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatMetrics(m))
			fmt.Println()
			return nil
		},
	}
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions := app.Monitoring.LiveSessions(context.Background())
			if len(sessions) == 0 {
				fmt.Println("No live sessions.")
				return nil
			}

			fmt.Print(formatter.FormatSessionList(sessions, time.Now()))
			fmt.Println()
			return nil
		},
	}
}

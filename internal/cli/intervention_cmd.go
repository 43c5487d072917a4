package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// outcomeValue is a pflag.Value restricted to the terminal intervention
// outcomes. Pending is not settable from the CLI; records start there.
type outcomeValue domain.InterventionOutcome

var _ pflag.Value = (*outcomeValue)(nil)

func (v *outcomeValue) String() string { return string(*v) }

func (v *outcomeValue) Set(s string) error {
	switch domain.InterventionOutcome(s) {
	case domain.OutcomeSuccessful, domain.OutcomePartial, domain.OutcomeUnsuccessful:
		*v = outcomeValue(s)
		return nil
	default:
		return fmt.Errorf("invalid outcome %q: want successful, partial or unsuccessful", s)
	}
}

func (v *outcomeValue) Type() string { return "outcome" }

func newInterventionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intervention",
		Short: "Review triggered interventions",
	}

	cmd.AddCommand(
		newInterventionListCmd(app),
		newInterventionResolveCmd(app),
	)

	return cmd
}

func newInterventionListCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unresolved interventions for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Monitoring.PendingInterventions(context.Background(), userID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No unresolved interventions.")
				return nil
			}

			fmt.Print(formatter.FormatInterventionList(records, time.Now()))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User whose interventions to list")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newInterventionResolveCmd(app *App) *cobra.Command {
	var outcome outcomeValue

	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Record the outcome of an intervention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Monitoring.ResolveIntervention(context.Background(), args[0], domain.InterventionOutcome(outcome)); err != nil {
				return err
			}

			fmt.Printf("Resolved %s as %s\n", args[0], string(outcome))
			return nil
		},
	}

	cmd.Flags().Var(&outcome, "outcome", "Outcome: successful, partial or unsuccessful")
	_ = cmd.MarkFlagRequired("outcome")

	return cmd
}

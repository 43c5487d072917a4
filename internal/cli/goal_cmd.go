package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Track therapeutic goal progress",
	}

	cmd.AddCommand(
		newGoalLogCmd(app),
		newGoalShowCmd(app),
		newGoalListCmd(app),
		newGoalMilestonesCmd(app),
		newGoalPauseCmd(app),
		newGoalResumeCmd(app),
		newGoalRemoveCmd(app),
	)

	return cmd
}

func newGoalLogCmd(app *App) *cobra.Command {
	var userID, goalID, note, status string
	var progress float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a progress entry for a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Catalog != nil && !app.Catalog.Known(goalID) {
				fmt.Println(formatter.Dim("note: " + goalID + " is not in the goal catalog; tracking anyway"))
			}

			gp, err := app.Progress.Log(context.Background(), contract.LogProgressRequest{
				UserID:   userID,
				GoalID:   goalID,
				Progress: progress,
				Note:     note,
				Status:   status,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Logged %s at %s (%s)\n", gp.GoalID, formatter.FormatPct(gp.Progress), gp.Status)
			for _, m := range gp.Milestones {
				if m.ReachedAt != nil && time.Since(*m.ReachedAt) < time.Minute {
					fmt.Println(formatter.StyleGreen.Render("✔ milestone reached: " + m.Title))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the goal belongs to")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Progress percentage in [0,100]")
	cmd.Flags().StringVar(&note, "note", "", "Entry note")
	cmd.Flags().StringVar(&status, "status", "", "Status override (paused, archived, in_progress, ...)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")
	_ = cmd.MarkFlagRequired("progress")

	return cmd
}

func newGoalShowCmd(app *App) *cobra.Command {
	var userID, goalID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one goal's progress card",
		RunE: func(cmd *cobra.Command, args []string) error {
			gp, err := app.Progress.Get(context.Background(), userID, goalID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatGoalDetail(gp, time.Now()))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the goal belongs to")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's tracked goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := app.Progress.ListByUser(context.Background(), userID)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println("No goals tracked yet.")
				return nil
			}

			fmt.Print(formatter.FormatGoalList(goals, time.Now()))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User to list goals for")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newGoalMilestonesCmd(app *App) *cobra.Command {
	var userID, goalID string
	var specs []string

	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Set a goal's milestones",
		Long: `Set a goal's milestones as PCT:TITLE pairs, replacing any existing set.
Milestones whose target the goal has already passed are marked reached.

Example:
  attune goal milestones --user u1 --goal anxiety-management --at "25:First tools" --at "75:Consolidating"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms := make([]domain.Milestone, 0, len(specs))
			for _, spec := range specs {
				m, err := parseMilestoneSpec(spec)
				if err != nil {
					return err
				}
				ms = append(ms, m)
			}

			if err := app.Progress.SetMilestones(context.Background(), userID, goalID, ms); err != nil {
				return err
			}

			fmt.Printf("Set %d milestone(s) on %s\n", len(ms), goalID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the goal belongs to")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID")
	cmd.Flags().StringArrayVar(&specs, "at", nil, "Milestone as PCT:TITLE (repeatable)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

// parseMilestoneSpec parses a "PCT:TITLE" flag value.
func parseMilestoneSpec(spec string) (domain.Milestone, error) {
	pctStr, title, found := strings.Cut(spec, ":")
	if !found || strings.TrimSpace(title) == "" {
		return domain.Milestone{}, fmt.Errorf("invalid milestone %q: want PCT:TITLE", spec)
	}
	pct, err := strconv.ParseFloat(strings.TrimSpace(pctStr), 64)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("invalid milestone %q: %w", spec, err)
	}
	return domain.Milestone{Title: strings.TrimSpace(title), TargetPct: pct}, nil
}

func newGoalPauseCmd(app *App) *cobra.Command {
	var userID, goalID, note string

	cmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause a goal without losing its progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			gp, err := app.Progress.Get(ctx, userID, goalID)
			if err != nil {
				return err
			}

			if _, err := app.Progress.Log(ctx, contract.LogProgressRequest{
				UserID:   userID,
				GoalID:   goalID,
				Progress: gp.Progress,
				Note:     note,
				Status:   string(domain.GoalPaused),
			}); err != nil {
				return err
			}

			fmt.Printf("Paused %s at %s\n", goalID, formatter.FormatPct(gp.Progress))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the goal belongs to")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID")
	cmd.Flags().StringVar(&note, "note", "", "Why the goal is paused")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func newGoalResumeCmd(app *App) *cobra.Command {
	var userID, goalID string

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			gp, err := app.Progress.Get(ctx, userID, goalID)
			if err != nil {
				return err
			}

			if _, err := app.Progress.Log(ctx, contract.LogProgressRequest{
				UserID:   userID,
				GoalID:   goalID,
				Progress: gp.Progress,
				Note:     "resumed",
				Status:   string(domain.GoalInProgress),
			}); err != nil {
				return err
			}

			fmt.Printf("Resumed %s at %s\n", goalID, formatter.FormatPct(gp.Progress))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the goal belongs to")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func newGoalRemoveCmd(app *App) *cobra.Command {
	var userID, goalID string
	var force bool

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a goal and its whole history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to remove %s without --force in non-interactive mode", goalID)
				}
				if !promptYesNo(fmt.Sprintf("Remove %s and all its history? [y/N] ", goalID)) {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := app.Progress.Delete(context.Background(), userID, goalID); err != nil {
				return err
			}

			fmt.Printf("Removed %s\n", goalID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the goal belongs to")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

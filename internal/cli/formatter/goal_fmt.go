package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

// FormatGoalList renders a user's tracked goals inside a bordered box.
func FormatGoalList(goals []*domain.GoalProgress, now time.Time) string {
	headers := []string{"GOAL", "PROGRESS", "STATUS", "UPDATED"}
	rows := make([][]string, 0, len(goals))

	for _, g := range goals {
		rows = append(rows, []string{
			Bold(GoalLabel(g.GoalID)),
			RenderProgress(g.Progress/100, 8),
			GoalStatusPill(g.Status),
			HumanTimestampFrom(g.UpdatedAt, now),
		})
	}

	return RenderBox("Goals", RenderTable(headers, rows))
}

// FormatGoalDetail renders one goal's full progress card: current state,
// milestones and the tail of its history.
func FormatGoalDetail(g *domain.GoalProgress, now time.Time) string {
	var b strings.Builder

	b.WriteString(Bold(GoalLabel(g.GoalID)) + "\n")
	b.WriteString(GoalStatusPill(g.Status) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROGRESS"), RenderProgress(g.Progress/100, 16)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED "), HumanTimestampFrom(g.UpdatedAt, now)))
	if days := g.DaysSinceUpdate(now); days > 7 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("no entries for %d days", days)) + "\n")
	}

	if len(g.Milestones) > 0 {
		b.WriteString("\n" + Header("Milestones") + "\n")
		for _, m := range g.Milestones {
			if m.ReachedAt != nil {
				b.WriteString(fmt.Sprintf("  %s %s %s\n",
					StyleGreen.Render("✔"),
					StyleFg.Render(m.Title),
					Dim(fmt.Sprintf("(%s at %s)", FormatPct(m.TargetPct), HumanTimestampFrom(*m.ReachedAt, now))),
				))
			} else {
				b.WriteString(fmt.Sprintf("  %s %s %s\n",
					StyleDim.Render("○"),
					StyleFg.Render(m.Title),
					Dim("("+FormatPct(m.TargetPct)+")"),
				))
			}
		}
	}

	if len(g.History) > 0 {
		b.WriteString("\n" + Header("Recent entries") + "\n")
		tail := g.History
		if len(tail) > 5 {
			tail = tail[len(tail)-5:]
		}
		for i := len(tail) - 1; i >= 0; i-- {
			e := tail[i]
			line := fmt.Sprintf("  %s  %s",
				Dim(HumanTimestampFrom(e.Timestamp, now)),
				StyleFg.Render(FormatPct(e.Progress)),
			)
			if e.Note != "" {
				line += "  " + Dim(e.Note)
			}
			b.WriteString(line + "\n")
		}
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

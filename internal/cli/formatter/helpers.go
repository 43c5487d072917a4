package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucbaten/attune/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// HumanTimestampFrom returns a human-friendly relative timestamp string
// against an explicit reference time.
func HumanTimestampFrom(t time.Time, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return RelativeDateFrom(t, now)
	}
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// GoalStatusPill returns a colored status indicator for a tracked goal.
func GoalStatusPill(status domain.GoalStatus) string {
	switch status {
	case domain.GoalNotStarted:
		return StyleBlue.Render("○ Not started")
	case domain.GoalInProgress:
		return StyleGreen.Render("● In progress")
	case domain.GoalCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.GoalPaused:
		return StyleYellow.Render("◌ Paused")
	case domain.GoalArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// OutcomePill returns a colored indicator for an intervention outcome.
func OutcomePill(outcome domain.InterventionOutcome) string {
	switch outcome {
	case domain.OutcomeSuccessful:
		return StyleGreen.Render("✔ Successful")
	case domain.OutcomePartial:
		return StyleYellow.Render("◑ Partial")
	case domain.OutcomeUnsuccessful:
		return StyleRed.Render("✖ Unsuccessful")
	case domain.OutcomePending:
		return StyleBlue.Render("… Pending")
	default:
		return StyleDim.Render(string(outcome))
	}
}

// TrendBadge returns a directional, colored label for a fitted trend.
func TrendBadge(trend domain.TrendType) string {
	switch trend {
	case domain.TrendImproving:
		return StyleGreen.Render("↑ Improving")
	case domain.TrendDeclining:
		return StyleRed.Render("↓ Declining")
	case domain.TrendVolatile:
		return StyleYellow.Render("↯ Volatile")
	default:
		return StyleBlue.Render("→ Stable")
	}
}

// CategoryBadge returns a capitalized, purple-styled category label.
func CategoryBadge(c string) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	label := strings.NewReplacer("-", " ", "_", " ").Replace(c)
	label = strings.ToUpper(label[:1]) + label[1:]
	return StylePurple.Render(label)
}

// GoalLabel turns a catalog goal id into a display label.
func GoalLabel(id string) string {
	if id == "" {
		return "--"
	}
	label := strings.ReplaceAll(id, "-", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatPct renders a progress percentage with one decimal at most.
func FormatPct(pct float64) string {
	if pct == math.Trunc(pct) {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

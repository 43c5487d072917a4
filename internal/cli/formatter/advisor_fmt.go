package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

// FormatConflictReport renders the verdict of a conflict-detection pass.
func FormatConflictReport(r *domain.ConflictReport) string {
	var b strings.Builder

	if r.SafeToProceed {
		b.WriteString(StyleGreen.Render("✔ Safe to proceed") + "\n")
	} else {
		b.WriteString(StyleRed.Render("✖ Not safe as selected") + "\n")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("WARNING"), RiskIndicator(r.WarningLevel)))
	b.WriteString(Dim("checked: "+strings.Join(r.CheckedGoals, ", ")) + "\n")

	if len(r.Conflicts) == 0 {
		b.WriteString("\n" + Dim("No conflicting combinations detected.") + "\n")
		return b.String()
	}

	for _, c := range r.Conflicts {
		b.WriteString("\n")
		b.WriteString(formatConflict(c))
	}

	return b.String()
}

// formatConflict renders one detected conflict with its resolution options.
func formatConflict(c domain.GoalConflict) string {
	var b strings.Builder

	title := Bold(GoalLabel(c.Pattern))
	if c.AutoResolvable {
		title += " " + StyleBlue.Render("[auto-resolvable]")
	}
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		RiskIndicator(c.Severity),
		title,
		Dim(fmt.Sprintf("(severity %.2f)", c.SeverityScore)),
	))
	b.WriteString("  " + StyleFg.Render(c.Explanation) + "\n")
	b.WriteString("  " + Dim("involves: "+strings.Join(c.Goals, ", ")) + "\n")

	for _, s := range c.Strategies {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleBlue.Render(fmt.Sprintf("%d.", s.Priority)),
			StyleFg.Render(s.Description),
		))
		if s.Adjustment != "" {
			b.WriteString("     " + Dim(s.Adjustment) + "\n")
		}
	}

	return b.String()
}

// FormatRecommendations renders a prioritized recommendation set.
func FormatRecommendations(set *domain.RecommendationSet, now time.Time) string {
	if len(set.Recommendations) == 0 {
		return Dim("Nothing to recommend right now.") + "\n"
	}

	var b strings.Builder

	for i, rec := range set.Recommendations {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			PriorityBadge(rec.Priority),
			Bold(rec.Title),
			CategoryBadge(rec.Category),
		))
		b.WriteString("  " + StyleFg.Render(rec.Description) + "\n")
		for _, a := range rec.Actions {
			b.WriteString("  " + StyleBlue.Render("→ ") + StyleFg.Render(a) + "\n")
		}
		b.WriteString("  " + Dim(fmt.Sprintf("confidence %.2f · relevance %.2f", rec.Confidence, rec.RelevanceScore)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("personalization %.2f · next review %s",
		set.PersonalizationScore,
		strings.ToLower(RelativeDateFrom(set.NextReviewDate, now)),
	)) + "\n")

	return b.String()
}

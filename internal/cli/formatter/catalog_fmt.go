package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucbaten/attune/internal/catalog"
)

// FormatCatalog renders the goal catalog grouped by category.
func FormatCatalog(goals []catalog.Goal) string {
	byCategory := make(map[string][]catalog.Goal)
	for _, g := range goals {
		byCategory[g.Category] = append(byCategory[g.Category], g)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	for i, c := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(strings.ReplaceAll(c, "-", " ")) + "\n")
		for _, g := range byCategory[c] {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleGreen.Render(g.ID),
				StyleFg.Render(g.Title),
				Dim(difficultyLabel(g.Difficulty)),
			))
			if len(g.Evidence) > 0 {
				b.WriteString("    " + Dim("evidence: "+strings.Join(g.Evidence, ", ")) + "\n")
			}
		}
	}

	return b.String()
}

// difficultyLabel buckets a difficulty multiplier into a word.
func difficultyLabel(d float64) string {
	switch {
	case d >= 1.1:
		return fmt.Sprintf("(easier, ×%.2f)", d)
	case d <= 0.9:
		return fmt.Sprintf("(harder, ×%.2f)", d)
	default:
		return fmt.Sprintf("(×%.2f)", d)
	}
}

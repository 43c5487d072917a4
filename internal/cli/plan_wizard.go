package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/domain"
)

// attuneHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func attuneHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planSelectGoals creates a huh form to multi-select goals from the catalog.
// Goals the user already tracks are excluded; tracked maps goal id to its
// current record.
func planSelectGoals(app *App, tracked map[string]*domain.GoalProgress, result *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(app.Catalog.Goals))
	for _, g := range app.Catalog.Goals {
		if _, ok := tracked[g.ID]; ok {
			continue
		}
		label := fmt.Sprintf("%s (%s)", g.Title, g.Category)
		options = append(options, huh.NewOption(label, g.ID))
	}

	if len(options) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which goals do you want to work on?").
				Description("Space toggles, Enter confirms.").
				Options(options...).
				Value(result),
		),
	).WithTheme(attuneHuhTheme()).WithShowHelp(false)
}

// planConfirm creates a huh form for a yes/no confirmation.
func planConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(attuneHuhTheme()).WithShowHelp(false)
}

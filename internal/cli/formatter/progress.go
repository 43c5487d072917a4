package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderBipolar renders a centered bar for a [-1,1] value, used for valence.
// The marker sits left of center for negative values and right for positive,
// like [░░░░┃█░░░] +0.21.
func RenderBipolar(v float64, width int) string {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	if width < 4 {
		width = 4
	}
	if width%2 != 0 {
		width++
	}

	half := width / 2
	filled := int(float64(half) * v)
	if filled < 0 {
		filled = -filled
	}
	if filled > half {
		filled = half
	}

	style := StyleGreen
	if v < -0.3 {
		style = StyleRed
	} else if v < 0.1 {
		style = StyleYellow
	}

	left := strings.Repeat(emptyBlock, half)
	right := strings.Repeat(emptyBlock, half)
	if v >= 0 {
		right = style.Render(strings.Repeat(filledBlock, filled)) + strings.Repeat(emptyBlock, half-filled)
	} else {
		left = strings.Repeat(emptyBlock, half-filled) + style.Render(strings.Repeat(filledBlock, filled))
	}

	return fmt.Sprintf("[%s%s%s] %+.2f", left, StyleDim.Render("┃"), right, v)
}

// RenderGauge renders a [0,1] reading with a fixed-width bar and its raw
// value, like [███░░░░░] 0.38. Unlike RenderProgress the color is caller
// supplied, since a high arousal reading is not "good" the way high goal
// progress is.
func RenderGauge(v float64, width int, style lipgloss.Style) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(v * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %.2f", style.Render(bar), v)
}

package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"0%", 0.0, "  0%"},
		{"45%", 0.45, " 45%"},
		{"100%", 1.0, "100%"},
		{"clamps above 1", 1.5, "100%"},
		{"clamps below 0", -0.5, "  0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, 8)
			assert.Contains(t, got, tt.want)
			assert.Contains(t, got, "[")
			assert.Contains(t, got, "]")
		})
	}
}

func TestRenderProgress_BarFill(t *testing.T) {
	full := RenderProgress(1.0, 4)
	assert.Contains(t, full, filledBlock)
	assert.NotContains(t, full, emptyBlock)

	empty := RenderProgress(0.0, 4)
	assert.Contains(t, empty, emptyBlock)
	assert.NotContains(t, empty, filledBlock)
}

func TestRenderBipolar(t *testing.T) {
	positive := RenderBipolar(0.5, 10)
	assert.Contains(t, positive, "+0.50")
	assert.Contains(t, positive, "┃")

	negative := RenderBipolar(-0.5, 10)
	assert.Contains(t, negative, "-0.50")

	zero := RenderBipolar(0, 10)
	assert.Contains(t, zero, "+0.00")

	// Out-of-range values clamp rather than panic.
	assert.Contains(t, RenderBipolar(3, 10), "+1.00")
	assert.Contains(t, RenderBipolar(-3, 10), "-1.00")
}

func TestRenderGauge(t *testing.T) {
	got := RenderGauge(0.38, 8, StyleBlue)
	assert.Contains(t, got, "0.38")
	assert.Contains(t, got, filledBlock)
	assert.Contains(t, got, emptyBlock)

	assert.Contains(t, RenderGauge(2.0, 8, StyleBlue), "1.00")
	assert.Contains(t, RenderGauge(-1.0, 8, StyleBlue), "0.00")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"GOAL", "PROGRESS"},
		[][]string{
			{"anxiety-management", "45%"},
			{"sleep", "80%"},
		},
	)

	assert.Contains(t, out, "GOAL")
	assert.Contains(t, out, "PROGRESS")
	assert.Contains(t, out, "anxiety-management")
	assert.Contains(t, out, "─")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTable_ShortRowsPadded(t *testing.T) {
	// A row with fewer cells than headers must not panic.
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}

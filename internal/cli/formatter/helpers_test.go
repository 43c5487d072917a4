package formatter

import (
	"testing"
	"time"

	"github.com/lucbaten/attune/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeDateFrom(tt.input, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", HumanTimestampFrom(now, now))
	assert.Equal(t, "5m ago", HumanTimestampFrom(now.Add(-5*time.Minute), now))
	assert.Equal(t, "2h ago", HumanTimestampFrom(now.Add(-2*time.Hour), now))
	// More than 24h falls back to the relative date.
	assert.Equal(t, "Yesterday", HumanTimestampFrom(now.Add(-30*time.Hour), now))
}

func TestGoalStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.GoalStatus
		contains string
	}{
		{domain.GoalNotStarted, "Not started"},
		{domain.GoalInProgress, "In progress"},
		{domain.GoalCompleted, "Completed"},
		{domain.GoalPaused, "Paused"},
		{domain.GoalArchived, "Archived"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, GoalStatusPill(tt.status), tt.contains)
		})
	}
}

func TestOutcomePill(t *testing.T) {
	assert.Contains(t, OutcomePill(domain.OutcomeSuccessful), "Successful")
	assert.Contains(t, OutcomePill(domain.OutcomePartial), "Partial")
	assert.Contains(t, OutcomePill(domain.OutcomeUnsuccessful), "Unsuccessful")
	assert.Contains(t, OutcomePill(domain.OutcomePending), "Pending")
}

func TestTrendBadge(t *testing.T) {
	assert.Contains(t, TrendBadge(domain.TrendImproving), "Improving")
	assert.Contains(t, TrendBadge(domain.TrendDeclining), "Declining")
	assert.Contains(t, TrendBadge(domain.TrendVolatile), "Volatile")
	assert.Contains(t, TrendBadge(domain.TrendStable), "Stable")
}

func TestRiskIndicator(t *testing.T) {
	assert.Contains(t, RiskIndicator(domain.RiskLow), "LOW")
	assert.Contains(t, RiskIndicator(domain.RiskModerate), "MODERATE")
	assert.Contains(t, RiskIndicator(domain.RiskHigh), "HIGH")
	assert.Contains(t, RiskIndicator(domain.RiskCritical), "CRITICAL")
}

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, PriorityBadge(domain.PriorityUrgent), "URGENT")
	assert.Contains(t, PriorityBadge(domain.PriorityHigh), "HIGH")
	assert.Contains(t, PriorityBadge(domain.PriorityMedium), "MEDIUM")
	assert.Contains(t, PriorityBadge(domain.PriorityLow), "LOW")
}

func TestGoalLabel(t *testing.T) {
	assert.Equal(t, "Anxiety management", GoalLabel("anxiety-management"))
	assert.Equal(t, "Sleep improvement", GoalLabel("sleep-improvement"))
	assert.Equal(t, "--", GoalLabel(""))
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "45%", FormatPct(45))
	assert.Equal(t, "37.5%", FormatPct(37.5))
	assert.Equal(t, "0%", FormatPct(0))
	assert.Equal(t, "100%", FormatPct(100))
}

func TestHeader_UppercasesAndUnderlines(t *testing.T) {
	got := Header("Milestones")
	assert.Contains(t, got, "MILESTONES")
	assert.Contains(t, got, "─")
}

func TestRenderBox_WrapsContent(t *testing.T) {
	got := RenderBox("Goals", "content line")
	assert.Contains(t, got, "GOALS")
	assert.Contains(t, got, "content line")
	assert.Contains(t, got, "╭")
	assert.Contains(t, got, "╰")
}

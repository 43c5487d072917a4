package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucbaten/attune/internal/catalog"
	"github.com/lucbaten/attune/internal/domain"
)

var conflictNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func detect(t *testing.T, goals []string, progress map[string]*domain.GoalProgress) domain.ConflictReport {
	t.Helper()
	return DetectConflicts(catalog.Default(), ConflictInput{
		SelectedGoals: goals,
		Progress:      progress,
		Now:           conflictNow,
	})
}

func TestDetectConflicts_EmptySelection(t *testing.T) {
	report := detect(t, nil, nil)

	assert.Empty(t, report.Conflicts)
	assert.Equal(t, domain.RiskLow, report.WarningLevel)
	assert.True(t, report.SafeToProceed)
	assert.Empty(t, report.CheckedGoals)
	assert.Equal(t, conflictNow, report.GeneratedAt)
}

func TestDetectConflicts_BelowTriggerCount(t *testing.T) {
	// Two anxiety-cluster goals, pattern needs three.
	report := detect(t, []string{"anxiety-management", "panic-reduction"}, nil)

	assert.Empty(t, report.Conflicts)
	assert.Equal(t, domain.RiskLow, report.WarningLevel)
	assert.True(t, report.SafeToProceed)
	assert.Equal(t, []string{"anxiety-management", "panic-reduction"}, report.CheckedGoals)
}

func TestDetectConflicts_AnxietyClusterAutoResolvable(t *testing.T) {
	report := detect(t, []string{"anxiety-management", "panic-reduction", "worry-reduction"}, nil)

	require.Len(t, report.Conflicts, 1)
	c := report.Conflicts[0]
	assert.Equal(t, "anxiety-overload", c.Pattern)
	assert.ElementsMatch(t, []string{"anxiety-management", "panic-reduction", "worry-reduction"}, c.Goals)
	assert.True(t, c.AutoResolvable)
	assert.NotEmpty(t, c.ID)

	// Base severity 0.6, no extra members, no progress boost.
	assert.InDelta(t, 0.6, c.SeverityScore, 1e-9)
	assert.Equal(t, domain.RiskHigh, c.Severity)
	assert.Equal(t, domain.RiskHigh, report.WarningLevel)
	assert.True(t, report.SafeToProceed)

	var hasPrimary bool
	for _, s := range c.Strategies {
		if s.Priority == 1 {
			hasPrimary = true
		}
	}
	assert.True(t, hasPrimary, "cluster conflict carries a priority-1 strategy")
}

func TestDetectConflicts_AchievementPressurePair(t *testing.T) {
	report := detect(t, []string{"perfectionism", "high-achievement"}, nil)

	require.Len(t, report.Conflicts, 1)
	c := report.Conflicts[0]
	assert.Equal(t, "achievement-pressure", c.Pattern)
	assert.InDelta(t, 0.55, c.SeverityScore, 1e-9)
	assert.Equal(t, domain.RiskHigh, c.Severity)
	assert.False(t, c.AutoResolvable)
	assert.NotEmpty(t, c.Strategies)
}

func TestDetectConflicts_ExtraMemberRaisesSeverity(t *testing.T) {
	// Third achievement goal beyond the trigger count: 0.55 + 0.1 = 0.65.
	report := detect(t, []string{"perfectionism", "high-achievement", "performance-optimization"}, nil)

	require.Len(t, report.Conflicts, 1)
	assert.InDelta(t, 0.65, report.Conflicts[0].SeverityScore, 1e-9)
	assert.Equal(t, domain.RiskHigh, report.Conflicts[0].Severity)
}

func TestDetectConflicts_ActiveProgressBoostReachesCritical(t *testing.T) {
	progress := map[string]*domain.GoalProgress{
		"perfectionism": {GoalID: "perfectionism", Progress: 60, Status: domain.GoalInProgress},
	}
	// 0.55 base + 0.2 active-progress boost = 0.75, critical bucket.
	report := detect(t, []string{"perfectionism", "high-achievement"}, progress)

	require.Len(t, report.Conflicts, 1)
	c := report.Conflicts[0]
	assert.InDelta(t, 0.75, c.SeverityScore, 1e-9)
	assert.Equal(t, domain.RiskCritical, c.Severity)
	assert.Contains(t, c.Explanation, "past half progress")
	assert.False(t, report.SafeToProceed)
}

func TestDetectConflicts_ProgressAtCutoffDoesNotBoost(t *testing.T) {
	progress := map[string]*domain.GoalProgress{
		"perfectionism": {GoalID: "perfectionism", Progress: 50, Status: domain.GoalInProgress},
	}
	report := detect(t, []string{"perfectionism", "high-achievement"}, progress)

	require.Len(t, report.Conflicts, 1)
	assert.InDelta(t, 0.55, report.Conflicts[0].SeverityScore, 1e-9)
}

func TestDetectConflicts_SeverityClampedAtOne(t *testing.T) {
	cat := &catalog.Catalog{
		Goals: []catalog.Goal{
			{ID: "a", Title: "A", Category: "x"},
			{ID: "b", Title: "B", Category: "x"},
			{ID: "c", Title: "C", Category: "x"},
		},
		Patterns: []catalog.Pattern{
			{Name: "heavy", Description: "heavy", Goals: []string{"a", "b", "c"}, MinSelected: 2, BaseSeverity: 0.95},
		},
	}
	progress := map[string]*domain.GoalProgress{"a": {GoalID: "a", Progress: 90}}

	// 0.95 + 0.1 extra member + 0.2 boost would be 1.25.
	report := DetectConflicts(cat, ConflictInput{
		SelectedGoals: []string{"a", "b", "c"},
		Progress:      progress,
		Now:           conflictNow,
	})

	require.Len(t, report.Conflicts, 1)
	assert.InDelta(t, 1.0, report.Conflicts[0].SeverityScore, 1e-9)
	assert.Equal(t, domain.RiskCritical, report.Conflicts[0].Severity)
}

func TestDetectConflicts_WarningLevelIsMeanSeverity(t *testing.T) {
	// achievement-pressure at 0.55 and anxiety-overload at 0.6: mean 0.575.
	report := detect(t, []string{
		"perfectionism", "high-achievement",
		"anxiety-management", "panic-reduction", "worry-reduction",
	}, nil)

	require.Len(t, report.Conflicts, 2)
	assert.Equal(t, "achievement-pressure", report.Conflicts[0].Pattern)
	assert.Equal(t, "anxiety-overload", report.Conflicts[1].Pattern)
	assert.Equal(t, domain.RiskHigh, report.WarningLevel)
	assert.True(t, report.SafeToProceed)
}

func TestDetectConflicts_UnknownGoalsIgnored(t *testing.T) {
	report := detect(t, []string{"not-a-goal", "also-unknown"}, nil)

	assert.Empty(t, report.Conflicts)
	assert.Equal(t, []string{"not-a-goal", "also-unknown"}, report.CheckedGoals)
	assert.True(t, report.SafeToProceed)
}

func TestDetectConflicts_NilCatalogUsesDefault(t *testing.T) {
	report := DetectConflicts(nil, ConflictInput{
		SelectedGoals: []string{"anxiety-management", "panic-reduction", "worry-reduction"},
		Now:           conflictNow,
	})

	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "anxiety-overload", report.Conflicts[0].Pattern)
}

package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucbaten/attune/internal/domain"
)

func TestPredictOutcome_ScalesByDifficulty(t *testing.T) {
	goal := goalWithHistory("sleep-improvement", domain.GoalInProgress, 55, nil)
	analysis := &domain.TrendAnalysis{
		GoalID:           "sleep-improvement",
		Trend:            domain.TrendImproving,
		Confidence:       0.8,
		ProjectedOutcome: 80,
	}

	prediction := PredictOutcome(goal, analysis, 1.1, trendNow)
	require.NotNil(t, prediction)

	assert.Equal(t, "sleep-improvement", prediction.GoalID)
	assert.InDelta(t, 88.0, prediction.ExpectedOutcome, 1e-9)
	// Interval width is (1-0.8)*20 = 4 points, centered on the estimate.
	assert.InDelta(t, 86.0, prediction.ConfidenceLow, 1e-9)
	assert.InDelta(t, 90.0, prediction.ConfidenceHigh, 1e-9)
	assert.Equal(t, 0.8, prediction.Confidence)

	require.Len(t, prediction.Scenarios, 3)
	assert.Equal(t, "optimistic", prediction.Scenarios[0].Name)
	assert.Equal(t, 0.3, prediction.Scenarios[0].Probability)
	assert.Equal(t, 100.0, prediction.Scenarios[0].Outcome) // 88*1.2 clamped
	assert.Equal(t, "conservative", prediction.Scenarios[1].Name)
	assert.Equal(t, 0.5, prediction.Scenarios[1].Probability)
	assert.InDelta(t, 88.0, prediction.Scenarios[1].Outcome, 1e-9)
	assert.Equal(t, "pessimistic", prediction.Scenarios[2].Name)
	assert.Equal(t, 0.2, prediction.Scenarios[2].Probability)
	assert.InDelta(t, 70.4, prediction.Scenarios[2].Outcome, 1e-9)
}

func TestPredictOutcome_NoTrendNoForecast(t *testing.T) {
	goal := goalWithHistory("g", domain.GoalInProgress, 10, nil)

	assert.Nil(t, PredictOutcome(goal, nil, 1.0, trendNow))
	assert.Nil(t, PredictOutcome(nil, &domain.TrendAnalysis{}, 1.0, trendNow))
}

func TestPredictOutcome_ZeroDifficultyDefaultsToNeutral(t *testing.T) {
	goal := goalWithHistory("g", domain.GoalInProgress, 10, nil)
	analysis := &domain.TrendAnalysis{Confidence: 1, ProjectedOutcome: 60}

	prediction := PredictOutcome(goal, analysis, 0, trendNow)
	require.NotNil(t, prediction)
	assert.InDelta(t, 60.0, prediction.ExpectedOutcome, 1e-9)
	// Full confidence collapses the interval.
	assert.Equal(t, prediction.ConfidenceLow, prediction.ConfidenceHigh)
}

func TestPredictOutcome_IntervalClampedToRange(t *testing.T) {
	goal := goalWithHistory("g", domain.GoalInProgress, 90, nil)
	analysis := &domain.TrendAnalysis{Confidence: 0.1, ProjectedOutcome: 99}

	prediction := PredictOutcome(goal, analysis, 1.2, trendNow)
	require.NotNil(t, prediction)
	assert.Equal(t, 100.0, prediction.ExpectedOutcome)
	assert.Equal(t, 100.0, prediction.ConfidenceHigh)
	assert.GreaterOrEqual(t, prediction.ConfidenceLow, 0.0)
}

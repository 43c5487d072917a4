package trend

import (
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

// confidenceIntervalSpan converts fit confidence into interval width: a
// perfect fit collapses the interval, a worthless one spreads 20 points.
const confidenceIntervalSpan = 20.0

// Fixed alternative-scenario weights. Probabilities sum to one.
var scenarioTable = []struct {
	name        string
	probability float64
	multiplier  float64
}{
	{"optimistic", 0.3, 1.2},
	{"conservative", 0.5, 1.0},
	{"pessimistic", 0.2, 0.8},
}

// PredictOutcome projects where a goal lands by scaling its trend projection
// with the goal category's difficulty multiplier. Returns nil without a
// trend: no fit, no forecast.
func PredictOutcome(goal *domain.GoalProgress, analysis *domain.TrendAnalysis, difficulty float64, now time.Time) *domain.OutcomePrediction {
	if goal == nil || analysis == nil {
		return nil
	}
	if difficulty <= 0 {
		difficulty = 1
	}

	expected := clampProgress(analysis.ProjectedOutcome * difficulty)

	width := (1 - analysis.Confidence) * confidenceIntervalSpan
	low := clampProgress(expected - width/2)
	high := clampProgress(expected + width/2)

	scenarios := make([]domain.OutcomeScenario, 0, len(scenarioTable))
	for _, s := range scenarioTable {
		scenarios = append(scenarios, domain.OutcomeScenario{
			Name:        s.name,
			Probability: s.probability,
			Outcome:     clampProgress(expected * s.multiplier),
		})
	}

	return &domain.OutcomePrediction{
		GoalID:          goal.GoalID,
		ExpectedOutcome: expected,
		ConfidenceLow:   low,
		ConfidenceHigh:  high,
		Confidence:      analysis.Confidence,
		Scenarios:       scenarios,
		GeneratedAt:     now,
	}
}

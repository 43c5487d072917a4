package domain

import "time"

// TrendAnalysis is the fitted trajectory of one goal's progress history.
// Derived data: recomputed on demand, never stored as source of truth.
type TrendAnalysis struct {
	GoalID           string
	Trend            TrendType
	Slope            float64  // progress points per day
	Correlation      float64  // Pearson r of progress against time
	Confidence       float64  // |Correlation|
	ProjectedOutcome float64  // fitted value 30 days out, clamped to [0,100]
	TimeToTargetDays *float64 // nil when the target is unreachable on this trend
	DataPoints       int
	GeneratedAt      time.Time
}

// RiskPrediction is one systemic-risk forecast (dropout, plateau, ...).
type RiskPrediction struct {
	Type                 PredictionType
	Probability          float64 // [0,1]
	Severity             RiskLevel
	TimeframeDays        int
	Indicators           []string
	MitigationStrategies []string
	GeneratedAt          time.Time
}

// OutcomeScenario is one alternative projection inside an outcome prediction.
type OutcomeScenario struct {
	Name        string
	Probability float64
	Outcome     float64 // projected progress pct
}

// OutcomePrediction projects where a goal lands given its trend and the
// goal category's difficulty.
type OutcomePrediction struct {
	GoalID          string
	ExpectedOutcome float64 // [0,100]
	ConfidenceLow   float64
	ConfidenceHigh  float64
	Confidence      float64
	Scenarios       []OutcomeScenario
	GeneratedAt     time.Time
}

package domain

import "time"

// RiskFactor is one named, typed signal contributing to an assessment.
type RiskFactor struct {
	Type        FactorType
	Severity    RiskLevel
	Indicators  []string
	DurationMin int // how long the signal has persisted, in minutes
	Trend       FactorTrend
}

// InterventionRecommendation is a corrective action suggested by an assessment.
type InterventionRecommendation struct {
	Type      InterventionType
	Priority  Priority
	Action    string
	Rationale string
	Timeframe string
	Resources []string
}

// RiskAssessment is the aggregate risk verdict for one analyzed utterance.
//
// Level is a monotone bucketing of Score against the fixed thresholds, with
// one documented exception: explicit crisis language forces Level critical
// and Score >= 0.95 regardless of the additive score. That override is an
// intentional safety bias, not a scoring bug.
type RiskAssessment struct {
	Level             RiskLevel
	Score             float64 // [0,1]
	Factors           []RiskFactor
	ProtectiveFactors []string
	Recommendations   []InterventionRecommendation
	Confidence        float64 // [0,1]
	Timestamp         time.Time
}

// Imminent reports whether the score sits in the immediate-escalation band.
func (a RiskAssessment) Imminent() bool {
	return a.Score >= ImminentThreshold
}

// InterventionRecord tracks a triggered intervention through clinical review.
// Outcome starts pending and is updated by the review collaborator.
type InterventionRecord struct {
	ID               string
	SessionID        string
	Type             InterventionType
	Action           string
	Timestamp        time.Time
	Outcome          InterventionOutcome
	FollowUpRequired bool
}

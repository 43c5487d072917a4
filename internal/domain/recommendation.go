package domain

import "time"

// PersonalizationFactor names one user signal a recommendation leaned on,
// with the weight it contributed to relevance.
type PersonalizationFactor struct {
	Name   string
	Weight float64 // [0,1]
}

// Recommendation is a single prioritized, personalized suggestion.
type Recommendation struct {
	ID             string
	Category       string // goal_gap, approach, progress, integration
	Priority       Priority
	Title          string
	Description    string
	Actions        []string
	Confidence     float64 // [0,1]
	RelevanceScore float64 // [0,1], user-specific fit
	Factors        []PersonalizationFactor
	GeneratedAt    time.Time
}

// RecommendationSet is the merged, sorted, truncated output of a generation
// pass, plus review scheduling derived from its contents.
type RecommendationSet struct {
	Recommendations      []Recommendation
	PersonalizationScore float64
	NextReviewDate       time.Time
	GeneratedAt          time.Time
}

// UserContext bundles everything the recommendation generators may draw on.
// Absent fields degrade the generators to their neutral behavior; none of
// them are required.
type UserContext struct {
	UserID          string
	SelectedGoals   []string
	Progress        map[string]*GoalProgress
	Trends          map[string]*TrendAnalysis
	RiskPredictions []RiskPrediction
	CurrentRisk     *RiskAssessment
	EngagementLevel float64 // [0,1], 0.5 when unknown
	Now             time.Time
}

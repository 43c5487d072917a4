package domain

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Bucketing thresholds for mapping a risk score onto a RiskLevel.
// ImminentThreshold marks the band inside critical where interventions
// escalate to the immediate crisis protocol.
const (
	ModerateThreshold = 0.25
	HighThreshold     = 0.5
	CriticalThreshold = 0.75
	ImminentThreshold = 0.9
)

// RiskLevelForScore maps a score in [0,1] onto the canonical risk buckets.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= CriticalThreshold:
		return RiskCritical
	case score >= HighThreshold:
		return RiskHigh
	case score >= ModerateThreshold:
		return RiskModerate
	default:
		return RiskLow
	}
}

// Rank returns a comparable severity rank (higher = more severe).
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskModerate:
		return 1
	default:
		return 0
	}
}

type FactorType string

const (
	FactorBehavioral    FactorType = "behavioral"
	FactorEmotional     FactorType = "emotional"
	FactorCognitive     FactorType = "cognitive"
	FactorSocial        FactorType = "social"
	FactorEnvironmental FactorType = "environmental"
)

type FactorTrend string

const (
	FactorImproving FactorTrend = "improving"
	FactorStable    FactorTrend = "stable"
	FactorWorsening FactorTrend = "worsening"
)

type InterventionType string

const (
	InterventionImmediate InterventionType = "immediate"
	InterventionShortTerm InterventionType = "short_term"
	InterventionLongTerm  InterventionType = "long_term"
)

type InterventionOutcome string

const (
	OutcomeSuccessful   InterventionOutcome = "successful"
	OutcomePartial      InterventionOutcome = "partial"
	OutcomeUnsuccessful InterventionOutcome = "unsuccessful"
	OutcomePending      InterventionOutcome = "pending"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns a comparable urgency rank (higher = more urgent).
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalPaused     GoalStatus = "paused"
	GoalArchived   GoalStatus = "archived"
)

type TrendType string

const (
	TrendImproving TrendType = "improving"
	TrendDeclining TrendType = "declining"
	TrendStable    TrendType = "stable"
	TrendVolatile  TrendType = "volatile"
)

type PredictionType string

const (
	PredictDropout    PredictionType = "dropout"
	PredictPlateau    PredictionType = "plateau"
	PredictRegression PredictionType = "regression"
	PredictCrisis     PredictionType = "crisis"
	PredictBurnout    PredictionType = "burnout"
)

// ValidGoalStatuses is the canonical set of accepted goal status strings.
var ValidGoalStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "completed": true,
	"paused": true, "archived": true,
}

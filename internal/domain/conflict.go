package domain

import "time"

// ResolutionStrategy is one suggested way out of a goal conflict.
// Priority 1 is the preferred strategy.
type ResolutionStrategy struct {
	Priority    int
	Description string
	Adjustment  string // which goal(s) to pause, sequence, or rescope
}

// GoalConflict is a detected incompatibility in the current goal selection.
// Conflicts are derived fresh on every detection pass; IDs carry no identity
// across passes.
type GoalConflict struct {
	ID             string
	Pattern        string // detector that produced the hit
	Goals          []string
	Severity       RiskLevel
	SeverityScore  float64 // [0,1]
	Explanation    string
	AutoResolvable bool
	Strategies     []ResolutionStrategy
	DetectedAt     time.Time
}

// ConflictReport is the outcome of one conflict-detection pass over a goal
// selection.
type ConflictReport struct {
	Conflicts     []GoalConflict
	WarningLevel  RiskLevel
	SafeToProceed bool
	CheckedGoals  []string
	GeneratedAt   time.Time
}

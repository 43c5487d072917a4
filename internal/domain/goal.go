package domain

import (
	"fmt"
	"time"
)

// Milestone is a named checkpoint inside a goal's progress range.
type Milestone struct {
	ID        string
	Title     string
	TargetPct float64
	ReachedAt *time.Time
}

// ProgressEntry is one recorded progress observation for a goal.
type ProgressEntry struct {
	Timestamp time.Time
	Progress  float64 // [0,100]
	Note      string
}

// GoalProgress is the tracked progress record for one (user, goal) pair.
type GoalProgress struct {
	UserID     string
	GoalID     string
	Progress   float64 // [0,100]
	Status     GoalStatus
	Milestones []Milestone
	History    []ProgressEntry
	UpdatedAt  time.Time
}

// ValidateProgress checks that a progress value sits in the [0,100] range.
func ValidateProgress(pct float64) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("progress %.1f out of range [0,100]", pct)
	}
	return nil
}

// Recalc derives Status from Progress. Paused and archived are sticky: they
// are set by an external actor and never overwritten by progress math.
func (g *GoalProgress) Recalc() {
	if g.Status == GoalPaused || g.Status == GoalArchived {
		return
	}
	switch {
	case g.Progress <= 0:
		g.Status = GoalNotStarted
	case g.Progress >= 100:
		g.Status = GoalCompleted
	default:
		g.Status = GoalInProgress
	}
}

// LastEntry returns the most recent history entry, or nil for empty history.
func (g *GoalProgress) LastEntry() *ProgressEntry {
	if len(g.History) == 0 {
		return nil
	}
	return &g.History[len(g.History)-1]
}

// DaysSinceUpdate returns whole days elapsed since the last recorded entry,
// or -1 when the goal has no history.
func (g *GoalProgress) DaysSinceUpdate(now time.Time) int {
	last := g.LastEntry()
	if last == nil {
		return -1
	}
	return int(now.Sub(last.Timestamp).Hours() / 24)
}

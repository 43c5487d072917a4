package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucbaten/attune/internal/domain"
)

// GoalProgress options
type GoalProgressOption func(*domain.GoalProgress)

func WithProgress(pct float64) GoalProgressOption {
	return func(g *domain.GoalProgress) {
		g.Progress = pct
		g.Recalc()
	}
}

func WithGoalStatus(s domain.GoalStatus) GoalProgressOption {
	return func(g *domain.GoalProgress) {
		g.Status = s
	}
}

func WithHistory(entries ...domain.ProgressEntry) GoalProgressOption {
	return func(g *domain.GoalProgress) {
		g.History = entries
	}
}

func WithMilestones(milestones ...domain.Milestone) GoalProgressOption {
	return func(g *domain.GoalProgress) {
		g.Milestones = milestones
	}
}

func WithUpdatedAt(t time.Time) GoalProgressOption {
	return func(g *domain.GoalProgress) {
		g.UpdatedAt = t
	}
}

func NewTestGoalProgress(userID, goalID string, opts ...GoalProgressOption) *domain.GoalProgress {
	g := &domain.GoalProgress{
		UserID:    userID,
		GoalID:    goalID,
		Progress:  0,
		Status:    domain.GoalNotStarted,
		UpdatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProgressEntry options
type EntryOption func(*domain.ProgressEntry)

func WithEntryNote(note string) EntryOption {
	return func(e *domain.ProgressEntry) {
		e.Note = note
	}
}

func WithEntryTime(t time.Time) EntryOption {
	return func(e *domain.ProgressEntry) {
		e.Timestamp = t
	}
}

func NewTestEntry(progress float64, opts ...EntryOption) domain.ProgressEntry {
	e := domain.ProgressEntry{
		Timestamp: time.Now().UTC(),
		Progress:  progress,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithReachedAt(t time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.ReachedAt = &t
	}
}

func NewTestMilestone(title string, targetPct float64, opts ...MilestoneOption) domain.Milestone {
	m := domain.Milestone{
		ID:        uuid.New().String(),
		Title:     title,
		TargetPct: targetPct,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// MonitoringSession options
type ArchivedSessionOption func(*domain.MonitoringSession)

func WithSessionID(id string) ArchivedSessionOption {
	return func(s *domain.MonitoringSession) {
		s.ID = id
	}
}

func WithSessionGoals(goals ...string) ArchivedSessionOption {
	return func(s *domain.MonitoringSession) {
		s.Goals = goals
	}
}

func WithSessionStart(t time.Time) ArchivedSessionOption {
	return func(s *domain.MonitoringSession) {
		s.StartTime = t
	}
}

func WithSessionEnd(t time.Time) ArchivedSessionOption {
	return func(s *domain.MonitoringSession) {
		s.EndTime = &t
	}
}

func WithOpenEnd() ArchivedSessionOption {
	return func(s *domain.MonitoringSession) {
		s.EndTime = nil
	}
}

// NewTestArchivedSession builds a stopped half-hour session ending now.
func NewTestArchivedSession(userID string, opts ...ArchivedSessionOption) *domain.MonitoringSession {
	now := time.Now().UTC()
	s := &domain.MonitoringSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartTime: now.Add(-30 * time.Minute),
		EndTime:   &now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InterventionRecord options
type InterventionOption func(*domain.InterventionRecord)

func WithInterventionType(t domain.InterventionType) InterventionOption {
	return func(r *domain.InterventionRecord) {
		r.Type = t
	}
}

func WithOutcome(o domain.InterventionOutcome) InterventionOption {
	return func(r *domain.InterventionRecord) {
		r.Outcome = o
	}
}

func WithInterventionTime(t time.Time) InterventionOption {
	return func(r *domain.InterventionRecord) {
		r.Timestamp = t
	}
}

func WithFollowUp() InterventionOption {
	return func(r *domain.InterventionRecord) {
		r.FollowUpRequired = true
	}
}

func NewTestIntervention(sessionID, action string, opts ...InterventionOption) *domain.InterventionRecord {
	r := &domain.InterventionRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Type:      domain.InterventionImmediate,
		Action:    action,
		Timestamp: time.Now().UTC(),
		Outcome:   domain.OutcomePending,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

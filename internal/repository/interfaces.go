package repository

import (
	"context"
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

// ArchivedSession is the stored summary of a completed monitoring run. Full
// utterance histories are not archived; emotional_snapshots carries the
// per-input readings the risk evaluators need.
type ArchivedSession struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   *time.Time
	Goals     []string
	Metrics   domain.MonitoringMetrics
}

// EmotionalSnapshot is one persisted per-utterance reading, written when a
// session is archived and read back by cross-session risk evaluation.
type EmotionalSnapshot struct {
	SessionID  string
	UserID     string
	Timestamp  time.Time
	Valence    float64
	Arousal    float64
	Dominance  float64
	Confidence float64
	RiskScore  float64
	RiskLevel  domain.RiskLevel
}

type GoalProgressRepo interface {
	Upsert(ctx context.Context, gp *domain.GoalProgress) error
	Get(ctx context.Context, userID, goalID string) (*domain.GoalProgress, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.GoalProgress, error)
	AppendEntry(ctx context.Context, userID, goalID string, e domain.ProgressEntry) error
	ReplaceMilestones(ctx context.Context, userID, goalID string, ms []domain.Milestone) error
	MarkMilestonesReached(ctx context.Context, userID, goalID string, progress float64, at time.Time) error
	Delete(ctx context.Context, userID, goalID string) error
}

type SessionArchiveRepo interface {
	Create(ctx context.Context, s *domain.MonitoringSession, m *domain.MonitoringMetrics) error
	GetByID(ctx context.Context, id string) (*ArchivedSession, error)
	ListByUser(ctx context.Context, userID string) ([]*ArchivedSession, error)
}

type InterventionRepo interface {
	Create(ctx context.Context, rec *domain.InterventionRecord) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.InterventionRecord, error)
	ListPendingByUser(ctx context.Context, userID string) ([]domain.InterventionRecord, error)
	UpdateOutcome(ctx context.Context, id string, outcome domain.InterventionOutcome) error
}

type SnapshotRepo interface {
	CreateBatch(ctx context.Context, rows []EmotionalSnapshot) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]EmotionalSnapshot, error)
}

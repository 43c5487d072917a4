// Package service composes the engine packages behind use-case interfaces
// the CLI consumes. Services translate engine sentinels into contract error
// codes and own all persistence around the in-memory monitor.
package service

import (
	"context"

	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/monitor"
)

type MonitoringService interface {
	Start(ctx context.Context, req contract.StartSessionRequest) (*domain.MonitoringSession, error)
	Analyze(ctx context.Context, req contract.AnalyzeRequest) (*contract.AnalyzeResponse, error)
	Stop(ctx context.Context, sessionID string) (*contract.StopSessionResponse, error)
	Metrics(ctx context.Context, sessionID string) (*domain.MonitoringMetrics, error)
	Subscribe(sessionID string) (<-chan monitor.Event, error)
	LiveSessions(ctx context.Context) []*domain.MonitoringSession
	PendingInterventions(ctx context.Context, userID string) ([]domain.InterventionRecord, error)
	ResolveIntervention(ctx context.Context, id string, outcome domain.InterventionOutcome) error
}

type InsightService interface {
	Insights(ctx context.Context, req contract.InsightRequest) (*contract.InsightResponse, error)
}

type AdvisorService interface {
	CheckConflicts(ctx context.Context, req contract.ConflictRequest) (*domain.ConflictReport, error)
	Recommend(ctx context.Context, req contract.RecommendRequest) (*domain.RecommendationSet, error)
}

type ProgressService interface {
	Log(ctx context.Context, req contract.LogProgressRequest) (*domain.GoalProgress, error)
	Get(ctx context.Context, userID, goalID string) (*domain.GoalProgress, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.GoalProgress, error)
	SetMilestones(ctx context.Context, userID, goalID string, ms []domain.Milestone) error
	Delete(ctx context.Context, userID, goalID string) error
}

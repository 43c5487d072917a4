package service

import (
	"context"
	"sync"
	"time"

	"github.com/lucbaten/attune/internal/catalog"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/repository"
	"github.com/lucbaten/attune/internal/trend"
)

type cachedInsight struct {
	resp      contract.InsightResponse
	expiresAt time.Time
}

type insightService struct {
	progress  repository.GoalProgressRepo
	snapshots repository.SnapshotRepo
	catalog   *catalog.Catalog
	ttl       time.Duration
	window    int
	clock     func() time.Time
	observer  UseCaseObserver

	mu    sync.Mutex
	cache map[string]cachedInsight
}

// NewInsightService computes per-user trend, risk and outcome analytics
// from stored progress and archived session readings. Results are memoized
// per user for the given TTL; window caps how many recent readings feed the
// risk evaluators.
func NewInsightService(
	progress repository.GoalProgressRepo,
	snapshots repository.SnapshotRepo,
	cat *catalog.Catalog,
	ttl time.Duration,
	window int,
	observers ...UseCaseObserver,
) InsightService {
	if cat == nil {
		cat = catalog.Default()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if window <= 0 {
		window = 50
	}
	return &insightService{
		progress:  progress,
		snapshots: snapshots,
		catalog:   cat,
		ttl:       ttl,
		window:    window,
		clock:     func() time.Time { return time.Now().UTC() },
		observer:  useCaseObserverOrNoop(observers),
		cache:     make(map[string]cachedInsight),
	}
}

func (s *insightService) Insights(ctx context.Context, req contract.InsightRequest) (*contract.InsightResponse, error) {
	if req.UserID == "" {
		return nil, &contract.InsightError{
			Code:    contract.ErrInsightInvalidUser,
			Message: "a user id is required",
		}
	}

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	if !req.Refresh {
		if hit, ok := s.cached(req.UserID, now); ok {
			return hit, nil
		}
	}

	// Only recomputations emit telemetry; cache hits are free.
	startedAt := time.Now().UTC()
	resp, err := s.compute(ctx, req.UserID, now)

	fields := map[string]any{"user_id": req.UserID}
	if resp != nil {
		fields["trends"] = len(resp.Trends)
		fields["risks"] = len(resp.Risks)
		fields["outcomes"] = len(resp.Outcomes)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "insights",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
	if err != nil {
		return nil, err
	}

	s.store(req.UserID, *resp, now)
	return resp, nil
}

func (s *insightService) compute(ctx context.Context, userID string, now time.Time) (*contract.InsightResponse, error) {
	goals, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(err)
	}

	histories := make(map[string][]domain.ProgressEntry, len(goals))
	for _, g := range goals {
		if len(g.History) > 0 {
			histories[g.GoalID] = g.History
		}
	}
	analyses, err := trend.AnalyzeAll(ctx, histories, now)
	if err != nil {
		return nil, s.internal(err)
	}

	rows, err := s.snapshots.ListRecentByUser(ctx, userID, s.window)
	if err != nil {
		return nil, s.internal(err)
	}
	states, assessments := snapshotHistories(rows)

	risks := trend.PredictRisks(trend.RiskInput{
		Progress:    goals,
		States:      states,
		Assessments: assessments,
		Now:         now,
	})

	// Goals arrive ordered by id, which keeps the published slices stable
	// across recomputations.
	var trends []domain.TrendAnalysis
	var outcomes []domain.OutcomePrediction
	for _, g := range goals {
		analysis := analyses[g.GoalID]
		if analysis == nil || !trend.Published(analysis) {
			continue
		}
		trends = append(trends, *analysis)
		if outcome := trend.PredictOutcome(g, analysis, s.catalog.Difficulty(g.GoalID), now); outcome != nil {
			outcomes = append(outcomes, *outcome)
		}
	}

	return &contract.InsightResponse{
		UserID:      userID,
		Trends:      trends,
		Risks:       risks,
		Outcomes:    outcomes,
		GeneratedAt: now,
	}, nil
}

func (s *insightService) cached(userID string, now time.Time) (*contract.InsightResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[userID]
	if !ok || now.After(entry.expiresAt) {
		return nil, false
	}
	resp := entry.resp
	resp.FromCache = true
	return &resp, true
}

func (s *insightService) store(userID string, resp contract.InsightResponse, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[userID] = cachedInsight{resp: resp, expiresAt: now.Add(s.ttl)}
}

func (s *insightService) internal(err error) error {
	return &contract.InsightError{Code: contract.ErrInsightInternal, Message: err.Error()}
}

// snapshotHistories rebuilds the state and assessment sequences the risk
// evaluators expect from persisted rows, oldest first.
func snapshotHistories(rows []repository.EmotionalSnapshot) ([]domain.EmotionalState, []domain.RiskAssessment) {
	states := make([]domain.EmotionalState, 0, len(rows))
	assessments := make([]domain.RiskAssessment, 0, len(rows))
	for _, row := range rows {
		states = append(states, domain.EmotionalState{
			Valence:    row.Valence,
			Arousal:    row.Arousal,
			Dominance:  row.Dominance,
			Confidence: row.Confidence,
			Timestamp:  row.Timestamp,
		})
		assessments = append(assessments, domain.RiskAssessment{
			Level:     row.RiskLevel,
			Score:     row.RiskScore,
			Timestamp: row.Timestamp,
		})
	}
	return states, assessments
}

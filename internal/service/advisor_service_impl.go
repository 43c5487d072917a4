package service

import (
	"context"
	"time"

	"github.com/lucbaten/attune/internal/advisor"
	"github.com/lucbaten/attune/internal/catalog"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/monitor"
	"github.com/lucbaten/attune/internal/repository"
)

type advisorService struct {
	progress repository.GoalProgressRepo
	archive  repository.SessionArchiveRepo
	insights InsightService
	monitor  *monitor.Monitor
	catalog  *catalog.Catalog
	clock    func() time.Time
	observer UseCaseObserver
}

// NewAdvisorService runs conflict detection over goal selections and
// assembles the full user context for recommendation generation: stored
// progress, insight-pipeline trends and risks, live session risk, and
// archived engagement.
func NewAdvisorService(
	progress repository.GoalProgressRepo,
	archive repository.SessionArchiveRepo,
	insights InsightService,
	m *monitor.Monitor,
	cat *catalog.Catalog,
	observers ...UseCaseObserver,
) AdvisorService {
	if cat == nil {
		cat = catalog.Default()
	}
	return &advisorService{
		progress: progress,
		archive:  archive,
		insights: insights,
		monitor:  m,
		catalog:  cat,
		clock:    func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *advisorService) CheckConflicts(ctx context.Context, req contract.ConflictRequest) (*domain.ConflictReport, error) {
	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	var progress map[string]*domain.GoalProgress
	if req.UserID != "" {
		goals, err := s.progress.ListByUser(ctx, req.UserID)
		if err != nil {
			return nil, s.internal(err)
		}
		progress = make(map[string]*domain.GoalProgress, len(goals))
		for _, g := range goals {
			progress[g.GoalID] = g
		}
	}

	report := advisor.DetectConflicts(s.catalog, advisor.ConflictInput{
		SelectedGoals: req.Goals,
		Progress:      progress,
		Now:           now,
	})
	return &report, nil
}

func (s *advisorService) Recommend(ctx context.Context, req contract.RecommendRequest) (*domain.RecommendationSet, error) {
	if req.UserID == "" {
		return nil, &contract.AdvisorError{
			Code:    contract.ErrAdvisorInvalidUser,
			Message: "a user id is required",
		}
	}

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	startedAt := time.Now().UTC()
	uc, err := s.loadContext(ctx, req.UserID, now)

	var set domain.RecommendationSet
	fields := map[string]any{"user_id": req.UserID}
	if err == nil {
		set = advisor.GenerateRecommendations(s.catalog, *uc, req.Max)
		fields["recommendations"] = len(set.Recommendations)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "recommend",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (s *advisorService) loadContext(ctx context.Context, userID string, now time.Time) (*domain.UserContext, error) {
	goals, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(err)
	}

	progress := make(map[string]*domain.GoalProgress, len(goals))
	var selected []string
	for _, g := range goals {
		progress[g.GoalID] = g
		if g.Status != domain.GoalArchived {
			selected = append(selected, g.GoalID)
		}
	}

	// Trends and systemic risks come through the insight pipeline, cache
	// included.
	insight, err := s.insights.Insights(ctx, contract.InsightRequest{UserID: userID, Now: &now})
	if err != nil {
		return nil, err
	}
	trends := make(map[string]*domain.TrendAnalysis, len(insight.Trends))
	for i := range insight.Trends {
		trends[insight.Trends[i].GoalID] = &insight.Trends[i]
	}

	return &domain.UserContext{
		UserID:          userID,
		SelectedGoals:   selected,
		Progress:        progress,
		Trends:          trends,
		RiskPredictions: insight.Risks,
		CurrentRisk:     s.liveRisk(userID),
		EngagementLevel: s.engagement(ctx, userID),
		Now:             now,
	}, nil
}

// liveRisk returns the latest assessment from the user's most recently
// started live session, or nil when nothing is being monitored.
func (s *advisorService) liveRisk(userID string) *domain.RiskAssessment {
	if s.monitor == nil {
		return nil
	}

	var latest *domain.RiskAssessment
	var latestStart time.Time
	for _, sess := range s.monitor.Sessions() {
		if sess.UserID != userID {
			continue
		}
		if a := sess.LatestAssessment(); a != nil && (latest == nil || sess.StartTime.After(latestStart)) {
			latest = a
			latestStart = sess.StartTime
		}
	}
	return latest
}

// engagement averages the archived per-session engagement metric. A read
// failure or empty archive degrades to the neutral prior instead of
// failing the recommendation.
func (s *advisorService) engagement(ctx context.Context, userID string) float64 {
	sessions, err := s.archive.ListByUser(ctx, userID)
	if err != nil || len(sessions) == 0 {
		return 0
	}
	var sum float64
	for _, sess := range sessions {
		sum += sess.Metrics.EngagementLevel
	}
	return sum / float64(len(sessions))
}

func (s *advisorService) internal(err error) error {
	return &contract.AdvisorError{Code: contract.ErrAdvisorInternal, Message: err.Error()}
}

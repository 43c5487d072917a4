package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/monitor"
	"github.com/lucbaten/attune/internal/repository"
)

type monitoringService struct {
	monitor       *monitor.Monitor
	archive       repository.SessionArchiveRepo
	interventions repository.InterventionRepo
	uow           db.UnitOfWork
	observer      UseCaseObserver
}

// NewMonitoringService wraps the live-session arena with contract-level
// error codes and archives stopped sessions through the unit of work.
func NewMonitoringService(
	m *monitor.Monitor,
	archive repository.SessionArchiveRepo,
	interventions repository.InterventionRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) MonitoringService {
	return &monitoringService{
		monitor:       m,
		archive:       archive,
		interventions: interventions,
		uow:           uow,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *monitoringService) Start(ctx context.Context, req contract.StartSessionRequest) (*domain.MonitoringSession, error) {
	if req.UserID == "" {
		return nil, &contract.MonitorError{
			Code:    contract.ErrEmptyUser,
			Message: "a user id is required to start monitoring",
		}
	}

	sess, err := s.monitor.StartMonitoring(req.SessionID, req.UserID, req.Goals)
	if err != nil {
		if errors.Is(err, monitor.ErrDuplicateSession) {
			return nil, &contract.MonitorError{
				Code:    contract.ErrDuplicateSession,
				Message: fmt.Sprintf("session %s is already live", req.SessionID),
			}
		}
		return nil, s.internal(err)
	}
	return sess, nil
}

// Analyze stays off the observer path: it runs per utterance and the
// contract is bounded, non-blocking time.
func (s *monitoringService) Analyze(ctx context.Context, req contract.AnalyzeRequest) (*contract.AnalyzeResponse, error) {
	actx := domain.AnalysisContext{
		MessageLength:  req.MessageLength,
		ResponseTimeMs: req.ResponseTimeMs,
		GoalProgress:   req.GoalProgress,
		SocialSupport:  req.SocialSupport,
	}

	state, assessment, err := s.monitor.AnalyzeInput(req.SessionID, req.Text, actx)
	if err != nil {
		if errors.Is(err, monitor.ErrSessionNotFound) {
			return nil, s.notFound(req.SessionID)
		}
		return nil, s.internal(err)
	}
	return &contract.AnalyzeResponse{State: state, Assessment: assessment}, nil
}

func (s *monitoringService) Stop(ctx context.Context, sessionID string) (resp *contract.StopSessionResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"session_id": sessionID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "session-stop",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	snap, stopErr := s.monitor.StopMonitoring(sessionID)
	if stopErr != nil {
		if errors.Is(stopErr, monitor.ErrSessionNotFound) {
			err = s.notFound(sessionID)
			return nil, err
		}
		err = s.internal(stopErr)
		return nil, err
	}

	metrics := monitor.ComputeMetrics(snap)
	fields["analyzed_inputs"] = metrics.AnalyzedInputs
	fields["interventions"] = len(snap.Interventions)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txArchive := repository.NewSQLiteSessionArchiveRepo(tx)
		txInterventions := repository.NewSQLiteInterventionRepo(tx)
		txSnapshots := repository.NewSQLiteSnapshotRepo(tx)

		if err := txArchive.Create(ctx, snap, metrics); err != nil {
			return err
		}
		for i := range snap.Interventions {
			if err := txInterventions.Create(ctx, &snap.Interventions[i]); err != nil {
				return err
			}
		}
		return txSnapshots.CreateBatch(ctx, snapshotRows(snap))
	})
	if err != nil {
		err = &contract.MonitorError{
			Code:    contract.ErrMonitorInternal,
			Message: fmt.Sprintf("archiving session %s: %v", sessionID, err),
		}
		return nil, err
	}

	return &contract.StopSessionResponse{Session: snap, Metrics: metrics}, nil
}

// Metrics reads live sessions first and falls back to the archive, so a
// stopped session keeps answering until its rows age out.
func (s *monitoringService) Metrics(ctx context.Context, sessionID string) (*domain.MonitoringMetrics, error) {
	if m := s.monitor.GetMetrics(sessionID); m != nil {
		return m, nil
	}

	archived, err := s.archive.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.notFound(sessionID)
		}
		return nil, s.internal(err)
	}
	m := archived.Metrics
	return &m, nil
}

func (s *monitoringService) Subscribe(sessionID string) (<-chan monitor.Event, error) {
	ch, err := s.monitor.Subscribe(sessionID)
	if err != nil {
		return nil, s.notFound(sessionID)
	}
	return ch, nil
}

func (s *monitoringService) LiveSessions(ctx context.Context) []*domain.MonitoringSession {
	return s.monitor.Sessions()
}

func (s *monitoringService) PendingInterventions(ctx context.Context, userID string) ([]domain.InterventionRecord, error) {
	records, err := s.interventions.ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(err)
	}
	return records, nil
}

func (s *monitoringService) ResolveIntervention(ctx context.Context, id string, outcome domain.InterventionOutcome) error {
	switch outcome {
	case domain.OutcomeSuccessful, domain.OutcomePartial, domain.OutcomeUnsuccessful:
	default:
		return &contract.MonitorError{
			Code:    contract.ErrInvalidOutcome,
			Message: fmt.Sprintf("outcome %q cannot resolve an intervention", outcome),
		}
	}

	if err := s.interventions.UpdateOutcome(ctx, id, outcome); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &contract.MonitorError{
				Code:    contract.ErrInterventionNotFound,
				Message: "no intervention " + id,
			}
		}
		return s.internal(err)
	}
	return nil
}

func (s *monitoringService) notFound(sessionID string) error {
	return &contract.MonitorError{
		Code:    contract.ErrSessionNotFound,
		Message: "no session " + sessionID,
	}
}

func (s *monitoringService) internal(err error) error {
	return &contract.MonitorError{Code: contract.ErrMonitorInternal, Message: err.Error()}
}

// snapshotRows zips the paired histories into persistable rows. Histories
// grow in lockstep, one assessment per state.
func snapshotRows(s *domain.MonitoringSession) []repository.EmotionalSnapshot {
	rows := make([]repository.EmotionalSnapshot, 0, len(s.EmotionalStates))
	for i, state := range s.EmotionalStates {
		assessment := s.RiskAssessments[i]
		rows = append(rows, repository.EmotionalSnapshot{
			SessionID:  s.ID,
			UserID:     s.UserID,
			Timestamp:  state.Timestamp,
			Valence:    state.Valence,
			Arousal:    state.Arousal,
			Dominance:  state.Dominance,
			Confidence: state.Confidence,
			RiskScore:  assessment.Score,
			RiskLevel:  assessment.Level,
		})
	}
	return rows
}

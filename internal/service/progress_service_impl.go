package service

import (
	"context"
	"errors"
	"time"

	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/repository"
)

type progressService struct {
	progress repository.GoalProgressRepo
	uow      db.UnitOfWork
	clock    func() time.Time
	observer UseCaseObserver
}

// NewProgressService is the recording API over the progress store: it
// validates, upserts the goal row, appends the history entry and marks any
// newly cleared milestones in one transaction.
func NewProgressService(progress repository.GoalProgressRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProgressService {
	return &progressService{
		progress: progress,
		uow:      uow,
		clock:    func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) Log(ctx context.Context, req contract.LogProgressRequest) (result *domain.GoalProgress, err error) {
	if req.UserID == "" || req.GoalID == "" {
		return nil, &contract.ProgressError{
			Code:    contract.ErrProgressEmptyKey,
			Message: "user id and goal id are required",
		}
	}
	if verr := domain.ValidateProgress(req.Progress); verr != nil {
		return nil, &contract.ProgressError{
			Code:    contract.ErrInvalidProgress,
			Message: verr.Error(),
		}
	}
	if req.Status != "" && !domain.ValidGoalStatuses[req.Status] {
		return nil, &contract.ProgressError{
			Code:    contract.ErrInvalidStatus,
			Message: "unknown status " + req.Status,
		}
	}

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-progress",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"user_id":  req.UserID,
				"goal_id":  req.GoalID,
				"progress": req.Progress,
			},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProgress := repository.NewSQLiteGoalProgressRepo(tx)

		gp, getErr := txProgress.Get(ctx, req.UserID, req.GoalID)
		if getErr != nil {
			if !errors.Is(getErr, repository.ErrNotFound) {
				return getErr
			}
			gp = &domain.GoalProgress{UserID: req.UserID, GoalID: req.GoalID}
		}

		gp.Progress = req.Progress
		gp.UpdatedAt = now
		if req.Status != "" {
			// An explicit status wins verbatim; this is how paused and
			// archived goals are resumed.
			gp.Status = domain.GoalStatus(req.Status)
		} else {
			gp.Recalc()
		}

		if err := txProgress.Upsert(ctx, gp); err != nil {
			return err
		}
		entry := domain.ProgressEntry{Timestamp: now, Progress: req.Progress, Note: req.Note}
		if err := txProgress.AppendEntry(ctx, req.UserID, req.GoalID, entry); err != nil {
			return err
		}
		return txProgress.MarkMilestonesReached(ctx, req.UserID, req.GoalID, req.Progress, now)
	})
	if err != nil {
		err = s.internal(err)
		return nil, err
	}

	// Reread outside the transaction so the caller sees the appended entry
	// and any milestones the log just cleared.
	result, err = s.Get(ctx, req.UserID, req.GoalID)
	return result, err
}

func (s *progressService) Get(ctx context.Context, userID, goalID string) (*domain.GoalProgress, error) {
	gp, err := s.progress.Get(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.notFound(userID, goalID)
		}
		return nil, s.internal(err)
	}
	return gp, nil
}

func (s *progressService) ListByUser(ctx context.Context, userID string) ([]*domain.GoalProgress, error) {
	goals, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(err)
	}
	return goals, nil
}

func (s *progressService) SetMilestones(ctx context.Context, userID, goalID string, ms []domain.Milestone) error {
	for _, m := range ms {
		if err := domain.ValidateProgress(m.TargetPct); err != nil {
			return &contract.ProgressError{
				Code:    contract.ErrInvalidProgress,
				Message: "milestone " + m.Title + ": " + err.Error(),
			}
		}
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProgress := repository.NewSQLiteGoalProgressRepo(tx)

		gp, getErr := txProgress.Get(ctx, userID, goalID)
		if getErr != nil {
			return getErr
		}
		if err := txProgress.ReplaceMilestones(ctx, userID, goalID, ms); err != nil {
			return err
		}
		// Milestones below the current progress count as already reached.
		return txProgress.MarkMilestonesReached(ctx, userID, goalID, gp.Progress, s.clock())
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.notFound(userID, goalID)
		}
		return s.internal(err)
	}
	return nil
}

func (s *progressService) Delete(ctx context.Context, userID, goalID string) error {
	if err := s.progress.Delete(ctx, userID, goalID); err != nil {
		return s.internal(err)
	}
	return nil
}

func (s *progressService) notFound(userID, goalID string) error {
	return &contract.ProgressError{
		Code:    contract.ErrProgressNotFound,
		Message: "no progress for " + userID + "/" + goalID,
	}
}

func (s *progressService) internal(err error) error {
	return &contract.ProgressError{Code: contract.ErrProgressInternal, Message: err.Error()}
}

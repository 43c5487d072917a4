package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/repository"
	"github.com/lucbaten/attune/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to set up all stores from a test DB
func setupStores(t *testing.T) (
	repository.GoalProgressRepo,
	repository.SessionArchiveRepo,
	repository.InterventionRepo,
	repository.SnapshotRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteGoalProgressRepo(database),
		repository.NewSQLiteSessionArchiveRepo(database),
		repository.NewSQLiteInterventionRepo(database),
		repository.NewSQLiteSnapshotRepo(database),
		testutil.NewTestUoW(database)
}

var logAt = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func TestLogProgress_CreatesGoalAndEntry(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	ctx := context.Background()

	svc := NewProgressService(progressRepo, uow)

	now := logAt
	gp, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID:   "user-1",
		GoalID:   "anxiety-management",
		Progress: 35,
		Note:     "breathing practice is getting easier",
		Now:      &now,
	})
	require.NoError(t, err)

	assert.Equal(t, 35.0, gp.Progress)
	assert.Equal(t, domain.GoalInProgress, gp.Status, "progress between 0 and 100 should derive in_progress")
	assert.Equal(t, logAt, gp.UpdatedAt)
	require.Len(t, gp.History, 1)
	assert.Equal(t, "breathing practice is getting easier", gp.History[0].Note)
	assert.Equal(t, logAt, gp.History[0].Timestamp)
}

func TestLogProgress_AccumulatesHistory(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	ctx := context.Background()

	svc := NewProgressService(progressRepo, uow)

	first := logAt
	_, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "worry-reduction", Progress: 20, Now: &first,
	})
	require.NoError(t, err)

	second := logAt.AddDate(0, 0, 2)
	gp, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "worry-reduction", Progress: 45, Now: &second,
	})
	require.NoError(t, err)

	require.Len(t, gp.History, 2)
	// Should be ordered oldest first.
	assert.Equal(t, 20.0, gp.History[0].Progress)
	assert.Equal(t, 45.0, gp.History[1].Progress)
	assert.Equal(t, 45.0, gp.Progress, "row should carry the latest value")

	all, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 1, "logging twice should not create a second goal row")
}

func TestLogProgress_EmptyKeyRejected(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	svc := NewProgressService(progressRepo, uow)

	_, err := svc.Log(context.Background(), contract.LogProgressRequest{
		UserID: "user-1", Progress: 10,
	})
	require.Error(t, err)

	var perr *contract.ProgressError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.ErrProgressEmptyKey, perr.Code)
}

func TestLogProgress_OutOfRangeRejected(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	svc := NewProgressService(progressRepo, uow)

	_, err := svc.Log(context.Background(), contract.LogProgressRequest{
		UserID: "user-1", GoalID: "worry-reduction", Progress: 140,
	})
	require.Error(t, err)

	var perr *contract.ProgressError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.ErrInvalidProgress, perr.Code)

	_, getErr := svc.Get(context.Background(), "user-1", "worry-reduction")
	require.Error(t, getErr, "rejected log should not create a row")
}

func TestLogProgress_UnknownStatusRejected(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	svc := NewProgressService(progressRepo, uow)

	_, err := svc.Log(context.Background(), contract.LogProgressRequest{
		UserID: "user-1", GoalID: "worry-reduction", Progress: 10, Status: "finished",
	})
	require.Error(t, err)

	var perr *contract.ProgressError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.ErrInvalidStatus, perr.Code)
}

func TestLogProgress_PausedStaysPausedUntilExplicitResume(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	ctx := context.Background()

	svc := NewProgressService(progressRepo, uow)

	now := logAt
	_, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "sleep-improvement", Progress: 30, Status: "paused", Now: &now,
	})
	require.NoError(t, err)

	// Logging more progress does not unpause by itself.
	later := logAt.AddDate(0, 0, 3)
	gp, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "sleep-improvement", Progress: 50, Now: &later,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalPaused, gp.Status, "paused is sticky across plain logs")
	assert.Equal(t, 50.0, gp.Progress)

	resumed, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "sleep-improvement", Progress: 55, Status: "in_progress", Now: &later,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalInProgress, resumed.Status, "an explicit status resumes the goal")
}

func TestLogProgress_MarksMilestonesInSameLog(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	ctx := context.Background()

	svc := NewProgressService(progressRepo, uow)

	now := logAt
	_, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "panic-reduction", Progress: 10, Now: &now,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetMilestones(ctx, "user-1", "panic-reduction", []domain.Milestone{
		{Title: "First calm week", TargetPct: 25},
		{Title: "Confident outside", TargetPct: 75},
	}))

	later := logAt.AddDate(0, 0, 5)
	gp, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "panic-reduction", Progress: 80, Now: &later,
	})
	require.NoError(t, err)

	require.Len(t, gp.Milestones, 2)
	require.NotNil(t, gp.Milestones[0].ReachedAt, "25% milestone should be reached at 80%")
	require.NotNil(t, gp.Milestones[1].ReachedAt, "75% milestone should be reached at 80%")
	assert.Equal(t, later, *gp.Milestones[1].ReachedAt)
}

func TestSetMilestones_BackfillsAlreadyClearedTargets(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	ctx := context.Background()

	svc := NewProgressService(progressRepo, uow)

	now := logAt
	_, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "worry-reduction", Progress: 60, Now: &now,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetMilestones(ctx, "user-1", "worry-reduction", []domain.Milestone{
		{Title: "Halfway", TargetPct: 50},
		{Title: "Final stretch", TargetPct: 90},
	}))

	gp, err := svc.Get(ctx, "user-1", "worry-reduction")
	require.NoError(t, err)
	require.Len(t, gp.Milestones, 2)
	assert.NotNil(t, gp.Milestones[0].ReachedAt, "targets below current progress count as reached")
	assert.Nil(t, gp.Milestones[1].ReachedAt)
}

func TestSetMilestones_UnknownGoal(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	svc := NewProgressService(progressRepo, uow)

	err := svc.SetMilestones(context.Background(), "user-1", "no-such-goal", []domain.Milestone{
		{Title: "Halfway", TargetPct: 50},
	})
	require.Error(t, err)

	var perr *contract.ProgressError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.ErrProgressNotFound, perr.Code)
}

func TestSetMilestones_InvalidTargetRejected(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	svc := NewProgressService(progressRepo, uow)

	err := svc.SetMilestones(context.Background(), "user-1", "worry-reduction", []domain.Milestone{
		{Title: "Too far", TargetPct: 120},
	})
	require.Error(t, err)

	var perr *contract.ProgressError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.ErrInvalidProgress, perr.Code)
	assert.Contains(t, perr.Message, "Too far")
}

func TestLogProgress_RollbackOnEntryFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	progressRepo := repository.NewSQLiteGoalProgressRepo(database)
	ctx := context.Background()

	// ExecContext #1 = Upsert, #2 = AppendEntry. Fail the entry insert so
	// the goal row written in the same tx must roll back.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected entry insert failure"),
	}

	svc := NewProgressService(progressRepo, failUoW)

	now := logAt
	_, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "worry-reduction", Progress: 40, Now: &now,
	})
	require.Error(t, err)

	var perr *contract.ProgressError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.ErrProgressInternal, perr.Code)
	assert.Contains(t, perr.Message, "injected entry insert failure")

	_, getErr := progressRepo.Get(ctx, "user-1", "worry-reduction")
	assert.ErrorIs(t, getErr, repository.ErrNotFound, "goal row should be rolled back with the entry")
}

func TestProgressService_Delete(t *testing.T) {
	progressRepo, _, _, _, uow := setupStores(t)
	ctx := context.Background()

	svc := NewProgressService(progressRepo, uow)

	now := logAt
	_, err := svc.Log(ctx, contract.LogProgressRequest{
		UserID: "user-1", GoalID: "worry-reduction", Progress: 40, Now: &now,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1", "worry-reduction"))

	_, err = svc.Get(ctx, "user-1", "worry-reduction")
	require.Error(t, err)

	var perr *contract.ProgressError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, contract.ErrProgressNotFound, perr.Code)
}

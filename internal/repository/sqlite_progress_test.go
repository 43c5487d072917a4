package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var progressUpdatedAt = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

func progressTestSetup(t *testing.T) *SQLiteGoalProgressRepo {
	t.Helper()
	return NewSQLiteGoalProgressRepo(testutil.NewTestDB(t))
}

func TestGoalProgressRepo_UpsertAndGet(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	gp := testutil.NewTestGoalProgress("user-1", "anxiety-management",
		testutil.WithProgress(40),
		testutil.WithUpdatedAt(progressUpdatedAt))
	require.NoError(t, repo.Upsert(ctx, gp))

	fetched, err := repo.Get(ctx, "user-1", "anxiety-management")
	require.NoError(t, err)
	assert.Equal(t, "user-1", fetched.UserID)
	assert.Equal(t, "anxiety-management", fetched.GoalID)
	assert.Equal(t, 40.0, fetched.Progress)
	assert.Equal(t, domain.GoalInProgress, fetched.Status)
	assert.Equal(t, progressUpdatedAt, fetched.UpdatedAt)
}

func TestGoalProgressRepo_UpsertUpdatesExisting(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	gp := testutil.NewTestGoalProgress("user-1", "sleep-improvement",
		testutil.WithProgress(20),
		testutil.WithUpdatedAt(progressUpdatedAt))
	require.NoError(t, repo.Upsert(ctx, gp))

	gp.Progress = 100
	gp.Recalc()
	gp.UpdatedAt = progressUpdatedAt.AddDate(0, 0, 3)
	require.NoError(t, repo.Upsert(ctx, gp))

	fetched, err := repo.Get(ctx, "user-1", "sleep-improvement")
	require.NoError(t, err)
	assert.Equal(t, 100.0, fetched.Progress)
	assert.Equal(t, domain.GoalCompleted, fetched.Status)

	list, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1, "upsert should not create a second row")
}

func TestGoalProgressRepo_Get_NotFound(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "user-1", "nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalProgressRepo_EntriesRoundTrip(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	gp := testutil.NewTestGoalProgress("user-1", "mindfulness-practice",
		testutil.WithProgress(30),
		testutil.WithUpdatedAt(progressUpdatedAt))
	require.NoError(t, repo.Upsert(ctx, gp))

	first := testutil.NewTestEntry(10,
		testutil.WithEntryTime(progressUpdatedAt.AddDate(0, 0, -2)),
		testutil.WithEntryNote("short morning sit"))
	second := testutil.NewTestEntry(30,
		testutil.WithEntryTime(progressUpdatedAt))
	require.NoError(t, repo.AppendEntry(ctx, "user-1", "mindfulness-practice", first))
	require.NoError(t, repo.AppendEntry(ctx, "user-1", "mindfulness-practice", second))

	fetched, err := repo.Get(ctx, "user-1", "mindfulness-practice")
	require.NoError(t, err)
	require.Len(t, fetched.History, 2)
	// History is ordered oldest first.
	assert.Equal(t, 10.0, fetched.History[0].Progress)
	assert.Equal(t, "short morning sit", fetched.History[0].Note)
	assert.Equal(t, 30.0, fetched.History[1].Progress)
	assert.Equal(t, progressUpdatedAt, fetched.History[1].Timestamp)
}

func TestGoalProgressRepo_ListByUser(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	worry := testutil.NewTestGoalProgress("user-1", "worry-reduction",
		testutil.WithProgress(50), testutil.WithUpdatedAt(progressUpdatedAt))
	anxiety := testutil.NewTestGoalProgress("user-1", "anxiety-management",
		testutil.WithProgress(25), testutil.WithUpdatedAt(progressUpdatedAt))
	other := testutil.NewTestGoalProgress("user-2", "worry-reduction",
		testutil.WithProgress(80), testutil.WithUpdatedAt(progressUpdatedAt))
	require.NoError(t, repo.Upsert(ctx, worry))
	require.NoError(t, repo.Upsert(ctx, anxiety))
	require.NoError(t, repo.Upsert(ctx, other))

	entry := testutil.NewTestEntry(25, testutil.WithEntryTime(progressUpdatedAt))
	require.NoError(t, repo.AppendEntry(ctx, "user-1", "anxiety-management", entry))
	require.NoError(t, repo.ReplaceMilestones(ctx, "user-1", "worry-reduction",
		[]domain.Milestone{testutil.NewTestMilestone("Halfway", 50)}))

	list, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordered by goal id; entries and milestones land on the right goal.
	assert.Equal(t, "anxiety-management", list[0].GoalID)
	assert.Len(t, list[0].History, 1)
	assert.Empty(t, list[0].Milestones)
	assert.Equal(t, "worry-reduction", list[1].GoalID)
	assert.Empty(t, list[1].History)
	require.Len(t, list[1].Milestones, 1)
	assert.Equal(t, "Halfway", list[1].Milestones[0].Title)
}

func TestGoalProgressRepo_ReplaceMilestones(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	gp := testutil.NewTestGoalProgress("user-1", "stress-management",
		testutil.WithUpdatedAt(progressUpdatedAt))
	require.NoError(t, repo.Upsert(ctx, gp))

	initial := []domain.Milestone{
		testutil.NewTestMilestone("Final push", 75),
		testutil.NewTestMilestone("First week", 25),
	}
	require.NoError(t, repo.ReplaceMilestones(ctx, "user-1", "stress-management", initial))

	fetched, err := repo.Get(ctx, "user-1", "stress-management")
	require.NoError(t, err)
	require.Len(t, fetched.Milestones, 2)
	// Milestones come back ordered by target percentage.
	assert.Equal(t, "First week", fetched.Milestones[0].Title)
	assert.Equal(t, "Final push", fetched.Milestones[1].Title)

	replacement := []domain.Milestone{testutil.NewTestMilestone("Halfway", 50)}
	require.NoError(t, repo.ReplaceMilestones(ctx, "user-1", "stress-management", replacement))

	fetched, err = repo.Get(ctx, "user-1", "stress-management")
	require.NoError(t, err)
	require.Len(t, fetched.Milestones, 1)
	assert.Equal(t, "Halfway", fetched.Milestones[0].Title)
}

func TestGoalProgressRepo_MarkMilestonesReached(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	gp := testutil.NewTestGoalProgress("user-1", "habit-formation",
		testutil.WithUpdatedAt(progressUpdatedAt))
	require.NoError(t, repo.Upsert(ctx, gp))
	require.NoError(t, repo.ReplaceMilestones(ctx, "user-1", "habit-formation", []domain.Milestone{
		testutil.NewTestMilestone("Started", 25),
		testutil.NewTestMilestone("Halfway", 50),
		testutil.NewTestMilestone("Almost there", 75),
	}))

	firstPass := progressUpdatedAt.AddDate(0, 0, 7)
	require.NoError(t, repo.MarkMilestonesReached(ctx, "user-1", "habit-formation", 60, firstPass))

	fetched, err := repo.Get(ctx, "user-1", "habit-formation")
	require.NoError(t, err)
	require.Len(t, fetched.Milestones, 3)
	require.NotNil(t, fetched.Milestones[0].ReachedAt)
	assert.Equal(t, firstPass, *fetched.Milestones[0].ReachedAt)
	assert.NotNil(t, fetched.Milestones[1].ReachedAt)
	assert.Nil(t, fetched.Milestones[2].ReachedAt)

	// A later pass fills the remaining milestone without touching earlier ones.
	secondPass := progressUpdatedAt.AddDate(0, 0, 14)
	require.NoError(t, repo.MarkMilestonesReached(ctx, "user-1", "habit-formation", 80, secondPass))

	fetched, err = repo.Get(ctx, "user-1", "habit-formation")
	require.NoError(t, err)
	require.NotNil(t, fetched.Milestones[0].ReachedAt)
	assert.Equal(t, firstPass, *fetched.Milestones[0].ReachedAt)
	require.NotNil(t, fetched.Milestones[2].ReachedAt)
	assert.Equal(t, secondPass, *fetched.Milestones[2].ReachedAt)
}

func TestGoalProgressRepo_Delete(t *testing.T) {
	repo := progressTestSetup(t)
	ctx := context.Background()

	gp := testutil.NewTestGoalProgress("user-1", "self-compassion",
		testutil.WithUpdatedAt(progressUpdatedAt))
	require.NoError(t, repo.Upsert(ctx, gp))
	require.NoError(t, repo.AppendEntry(ctx, "user-1", "self-compassion",
		testutil.NewTestEntry(10, testutil.WithEntryTime(progressUpdatedAt))))

	require.NoError(t, repo.Delete(ctx, "user-1", "self-compassion"))

	_, err := repo.Get(ctx, "user-1", "self-compassion")
	assert.ErrorIs(t, err, ErrNotFound)
}

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

var archiveStart = time.Date(2026, 2, 12, 18, 0, 0, 0, time.UTC)

func archiveTestSetup(t *testing.T) *SQLiteSessionArchiveRepo {
	t.Helper()
	return NewSQLiteSessionArchiveRepo(testutil.NewTestDB(t))
}

func TestSessionArchiveRepo_CreateAndGet(t *testing.T) {
	repo := archiveTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestArchivedSession("user-1",
		testutil.WithSessionStart(archiveStart),
		testutil.WithSessionEnd(archiveStart.Add(50*time.Minute)),
		testutil.WithSessionGoals("anxiety-management", "sleep-improvement"))
	metrics := &domain.MonitoringMetrics{
		SessionID:                 sess.ID,
		AverageRiskScore:          0.32,
		EmotionalStability:        0.7,
		EngagementLevel:           0.6,
		TherapeuticProgress:       0.55,
		InterventionEffectiveness: 0.5,
		SessionQuality:            0.61,
		AnalyzedInputs:            14,
	}
	require.NoError(t, repo.Create(ctx, sess, metrics))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	assert.Equal(t, "user-1", fetched.UserID)
	assert.Equal(t, archiveStart, fetched.StartTime)
	require.NotNil(t, fetched.EndTime)
	assert.Equal(t, archiveStart.Add(50*time.Minute), *fetched.EndTime)
	assert.Equal(t, []string{"anxiety-management", "sleep-improvement"}, fetched.Goals)
	assert.Equal(t, sess.ID, fetched.Metrics.SessionID)
	assert.Equal(t, 0.32, fetched.Metrics.AverageRiskScore)
	assert.Equal(t, 14, fetched.Metrics.AnalyzedInputs)
}

func TestSessionArchiveRepo_NilMetricsStoresNeutralPrior(t *testing.T) {
	repo := archiveTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestArchivedSession("user-1",
		testutil.WithSessionStart(archiveStart),
		testutil.WithSessionEnd(archiveStart.Add(time.Minute)))
	require.NoError(t, repo.Create(ctx, sess, nil))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fetched.Metrics.AverageRiskScore)
	assert.Equal(t, 0.5, fetched.Metrics.EmotionalStability)
	assert.Equal(t, 0.5, fetched.Metrics.SessionQuality)
	assert.Equal(t, 0, fetched.Metrics.AnalyzedInputs)
}

func TestSessionArchiveRepo_GetByID_NotFound(t *testing.T) {
	repo := archiveTestSetup(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionArchiveRepo_ListByUser_NewestFirst(t *testing.T) {
	repo := archiveTestSetup(t)
	ctx := context.Background()

	older := testutil.NewTestArchivedSession("user-1",
		testutil.WithSessionStart(archiveStart.AddDate(0, 0, -3)),
		testutil.WithSessionEnd(archiveStart.AddDate(0, 0, -3).Add(time.Hour)))
	newer := testutil.NewTestArchivedSession("user-1",
		testutil.WithSessionStart(archiveStart),
		testutil.WithSessionEnd(archiveStart.Add(time.Hour)))
	other := testutil.NewTestArchivedSession("user-2",
		testutil.WithSessionStart(archiveStart),
		testutil.WithSessionEnd(archiveStart.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, older, nil))
	require.NoError(t, repo.Create(ctx, newer, nil))
	require.NoError(t, repo.Create(ctx, other, nil))

	list, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestSessionArchiveRepo_NoGoalsRoundTripsEmpty(t *testing.T) {
	repo := archiveTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestArchivedSession("user-1",
		testutil.WithSessionStart(archiveStart),
		testutil.WithSessionEnd(archiveStart.Add(time.Minute)))
	require.NoError(t, repo.Create(ctx, sess, nil))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Goals)
}

func TestSessionArchiveRepo_OpenSessionRoundTripsNilEnd(t *testing.T) {
	repo := archiveTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestArchivedSession("user-1",
		testutil.WithSessionStart(archiveStart),
		testutil.WithOpenEnd())
	require.NoError(t, repo.Create(ctx, sess, nil))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.EndTime)
}

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countGoals(t *testing.T, uow *SQLiteUnitOfWork) int {
	t.Helper()
	var count int
	require.NoError(t, uow.db.QueryRow(`SELECT COUNT(*) FROM goal_progress`).Scan(&count))
	return count
}

func TestWithinTx_CommitPersists(t *testing.T) {
	conn := newTestDB(t)
	uow := NewSQLiteUnitOfWork(conn)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO goal_progress (user_id, goal_id, progress, status, updated_at) VALUES (?, ?, 10, 'in_progress', ?)`,
			"user-1", "goal-1", "2026-03-14T09:00:00Z",
		)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countGoals(t, uow))
}

func TestWithinTx_ErrorRollsBack(t *testing.T) {
	conn := newTestDB(t)
	uow := NewSQLiteUnitOfWork(conn)
	ctx := context.Background()

	boom := errors.New("boom")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		if _, execErr := tx.ExecContext(ctx,
			`INSERT INTO goal_progress (user_id, goal_id, progress, status, updated_at) VALUES (?, ?, 10, 'in_progress', ?)`,
			"user-1", "goal-1", "2026-03-14T09:00:00Z",
		); execErr != nil {
			return execErr
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, countGoals(t, uow))
}

func TestWithinTx_PanicRollsBackAndRepanics(t *testing.T) {
	conn := newTestDB(t)
	uow := NewSQLiteUnitOfWork(conn)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO goal_progress (user_id, goal_id, progress, status, updated_at) VALUES (?, ?, 10, 'in_progress', ?)`,
				"user-1", "goal-1", "2026-03-14T09:00:00Z",
			); err != nil {
				return err
			}
			panic("mid-transaction failure")
		})
	})
	assert.Zero(t, countGoals(t, uow))
}

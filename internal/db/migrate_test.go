package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func tableExists(t *testing.T, conn *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := conn.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestMigrate_CreatesSchema(t *testing.T) {
	conn := newTestDB(t)

	for _, table := range []string{
		"goal_progress", "progress_entries", "milestones",
		"monitoring_sessions", "interventions", "emotional_snapshots",
	} {
		assert.True(t, tableExists(t, conn, table), "missing table %s", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := newTestDB(t)

	// Re-running hits every ALTER TABLE a second time; duplicate column
	// errors must be tolerated.
	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))
}

func TestSchema_AlteredColumnsExistOnFreshDB(t *testing.T) {
	conn := newTestDB(t)

	_, err := conn.Exec(
		`INSERT INTO monitoring_sessions (id, user_id, start_time, goals) VALUES (?, ?, ?, ?)`,
		"sess-1", "user-1", "2026-03-14T09:00:00Z", "anxiety-management,sleep-improvement",
	)
	require.NoError(t, err)

	var goals string
	require.NoError(t, conn.QueryRow(
		`SELECT goals FROM monitoring_sessions WHERE id = ?`, "sess-1",
	).Scan(&goals))
	assert.Equal(t, "anxiety-management,sleep-improvement", goals)

	_, err = conn.Exec(
		`INSERT INTO goal_progress (user_id, goal_id, progress, status, updated_at) VALUES (?, ?, ?, ?, ?)`,
		"user-1", "sleep-improvement", 10.0, "in_progress", "2026-03-14T09:00:00Z",
	)
	require.NoError(t, err)

	_, err = conn.Exec(
		`INSERT INTO progress_entries (id, user_id, goal_id, timestamp, progress, note) VALUES (?, ?, ?, ?, ?, ?)`,
		"e-1", "user-1", "sleep-improvement", "2026-03-14T09:00:00Z", 10.0, "first log",
	)
	require.NoError(t, err)
}

func TestSchema_RejectsUnknownGoalStatus(t *testing.T) {
	conn := newTestDB(t)

	_, err := conn.Exec(
		`INSERT INTO goal_progress (user_id, goal_id, progress, status, updated_at) VALUES (?, ?, ?, ?, ?)`,
		"user-1", "goal-1", 10.0, "bogus", "2026-03-14T09:00:00Z",
	)
	assert.Error(t, err)
}

func TestSchema_RejectsUnknownRiskLevel(t *testing.T) {
	conn := newTestDB(t)

	_, err := conn.Exec(
		`INSERT INTO monitoring_sessions (id, user_id, start_time) VALUES (?, ?, ?)`,
		"sess-1", "user-1", "2026-03-14T09:00:00Z",
	)
	require.NoError(t, err)

	_, err = conn.Exec(
		`INSERT INTO emotional_snapshots (id, session_id, user_id, timestamp, valence, arousal, dominance, confidence, risk_score, risk_level)
		 VALUES (?, ?, ?, ?, 0, 0.5, 0.5, 0.8, 0.2, 'extreme')`,
		"snap-1", "sess-1", "user-1", "2026-03-14T09:05:00Z",
	)
	assert.Error(t, err)
}

func TestSchema_SessionDeleteCascades(t *testing.T) {
	conn := newTestDB(t)

	_, err := conn.Exec(
		`INSERT INTO monitoring_sessions (id, user_id, start_time) VALUES (?, ?, ?)`,
		"sess-1", "user-1", "2026-03-14T09:00:00Z",
	)
	require.NoError(t, err)
	_, err = conn.Exec(
		`INSERT INTO interventions (id, session_id, type, action, timestamp) VALUES (?, ?, 'immediate', 'crisis protocol', ?)`,
		"iv-1", "sess-1", "2026-03-14T09:10:00Z",
	)
	require.NoError(t, err)
	_, err = conn.Exec(
		`INSERT INTO emotional_snapshots (id, session_id, user_id, timestamp, valence, arousal, dominance, confidence, risk_score, risk_level)
		 VALUES (?, ?, ?, ?, -0.5, 0.8, 0.3, 0.8, 0.9, 'critical')`,
		"snap-1", "sess-1", "user-1", "2026-03-14T09:10:00Z",
	)
	require.NoError(t, err)

	_, err = conn.Exec(`DELETE FROM monitoring_sessions WHERE id = ?`, "sess-1")
	require.NoError(t, err)

	var interventions, snapshots int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM interventions`).Scan(&interventions))
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM emotional_snapshots`).Scan(&snapshots))
	assert.Zero(t, interventions)
	assert.Zero(t, snapshots)
}

func TestSchema_GoalDeleteCascades(t *testing.T) {
	conn := newTestDB(t)

	_, err := conn.Exec(
		`INSERT INTO goal_progress (user_id, goal_id, progress, status, updated_at) VALUES (?, ?, 20, 'in_progress', ?)`,
		"user-1", "goal-1", "2026-03-14T09:00:00Z",
	)
	require.NoError(t, err)
	_, err = conn.Exec(
		`INSERT INTO progress_entries (id, user_id, goal_id, timestamp, progress, note) VALUES (?, ?, ?, ?, 20, '')`,
		"e-1", "user-1", "goal-1", "2026-03-14T09:00:00Z",
	)
	require.NoError(t, err)
	_, err = conn.Exec(
		`INSERT INTO milestones (id, user_id, goal_id, title, target_pct) VALUES (?, ?, ?, 'Halfway', 50)`,
		"m-1", "user-1", "goal-1",
	)
	require.NoError(t, err)

	_, err = conn.Exec(`DELETE FROM goal_progress WHERE user_id = ? AND goal_id = ?`, "user-1", "goal-1")
	require.NoError(t, err)

	var entries, milestones int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM progress_entries`).Scan(&entries))
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM milestones`).Scan(&milestones))
	assert.Zero(t, entries)
	assert.Zero(t, milestones)
}

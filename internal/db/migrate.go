package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. The statement list only ever grows;
// ALTER TABLE statements re-run on every start, so "duplicate column name"
// errors are expected and skipped.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS goal_progress (
		user_id    TEXT NOT NULL,
		goal_id    TEXT NOT NULL,
		progress   REAL NOT NULL DEFAULT 0,
		status     TEXT NOT NULL DEFAULT 'not_started'
		           CHECK(status IN ('not_started','in_progress','completed','paused','archived')),
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, goal_id)
	)`,

	`CREATE TABLE IF NOT EXISTS progress_entries (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL,
		goal_id   TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		progress  REAL NOT NULL,
		FOREIGN KEY (user_id, goal_id) REFERENCES goal_progress(user_id, goal_id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_progress_entries_goal ON progress_entries(user_id, goal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_entries_time ON progress_entries(timestamp)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		goal_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		target_pct REAL NOT NULL,
		reached_at TEXT,
		FOREIGN KEY (user_id, goal_id) REFERENCES goal_progress(user_id, goal_id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_goal ON milestones(user_id, goal_id)`,

	`CREATE TABLE IF NOT EXISTS monitoring_sessions (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		start_time      TEXT NOT NULL,
		end_time        TEXT,
		analyzed_inputs INTEGER NOT NULL DEFAULT 0,
		avg_risk        REAL NOT NULL DEFAULT 0,
		stability       REAL NOT NULL DEFAULT 0.5,
		engagement      REAL NOT NULL DEFAULT 0.5,
		progress        REAL NOT NULL DEFAULT 0.5,
		effectiveness   REAL NOT NULL DEFAULT 0.5,
		quality         REAL NOT NULL DEFAULT 0.5
	)`,

	`CREATE INDEX IF NOT EXISTS idx_monitoring_sessions_user ON monitoring_sessions(user_id)`,

	`CREATE TABLE IF NOT EXISTS interventions (
		id                 TEXT PRIMARY KEY,
		session_id         TEXT NOT NULL REFERENCES monitoring_sessions(id) ON DELETE CASCADE,
		type               TEXT NOT NULL
		                   CHECK(type IN ('immediate','short_term','long_term')),
		action             TEXT NOT NULL,
		timestamp          TEXT NOT NULL,
		outcome            TEXT NOT NULL DEFAULT 'pending'
		                   CHECK(outcome IN ('successful','partial','unsuccessful','pending')),
		follow_up_required INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_interventions_session ON interventions(session_id)`,

	`CREATE TABLE IF NOT EXISTS emotional_snapshots (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES monitoring_sessions(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		timestamp  TEXT NOT NULL,
		valence    REAL NOT NULL,
		arousal    REAL NOT NULL,
		dominance  REAL NOT NULL,
		confidence REAL NOT NULL,
		risk_score REAL NOT NULL,
		risk_level TEXT NOT NULL
		           CHECK(risk_level IN ('low','moderate','high','critical'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_user_time ON emotional_snapshots(user_id, timestamp)`,

	// Goal selections were added after session archiving shipped
	`ALTER TABLE monitoring_sessions ADD COLUMN goals TEXT NOT NULL DEFAULT ''`,

	// Free-text notes on progress entries
	`ALTER TABLE progress_entries ADD COLUMN note TEXT NOT NULL DEFAULT ''`,
}

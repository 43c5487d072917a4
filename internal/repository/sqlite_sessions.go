package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/domain"
)

const archiveColumns = `id, user_id, start_time, end_time, goals, analyzed_inputs,
		avg_risk, stability, engagement, progress, effectiveness, quality`

// SQLiteSessionArchiveRepo implements SessionArchiveRepo over SQLite.
type SQLiteSessionArchiveRepo struct {
	db db.DBTX
}

// NewSQLiteSessionArchiveRepo creates a repo bound to the given connection
// or transaction.
func NewSQLiteSessionArchiveRepo(conn db.DBTX) *SQLiteSessionArchiveRepo {
	return &SQLiteSessionArchiveRepo{db: conn}
}

func (r *SQLiteSessionArchiveRepo) Create(ctx context.Context, s *domain.MonitoringSession, m *domain.MonitoringMetrics) error {
	if m == nil {
		m = domain.NeutralMetrics(s.ID)
	}
	query := `INSERT INTO monitoring_sessions (` + archiveColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.StartTime.Format(time.RFC3339),
		nullableTimeToString(s.EndTime, time.RFC3339),
		joinGoals(s.Goals),
		m.AnalyzedInputs,
		m.AverageRiskScore,
		m.EmotionalStability,
		m.EngagementLevel,
		m.TherapeuticProgress,
		m.InterventionEffectiveness,
		m.SessionQuality,
	)
	if err != nil {
		return fmt.Errorf("inserting archived session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionArchiveRepo) GetByID(ctx context.Context, id string) (*ArchivedSession, error) {
	query := `SELECT ` + archiveColumns + ` FROM monitoring_sessions WHERE id = ?`
	return r.scanArchive(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionArchiveRepo) ListByUser(ctx context.Context, userID string) ([]*ArchivedSession, error) {
	query := `SELECT ` + archiveColumns + ` FROM monitoring_sessions
		WHERE user_id = ? ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing archived sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*ArchivedSession
	for rows.Next() {
		s, scanErr := r.scanArchiveRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionArchiveRepo) scanArchive(row *sql.Row) (*ArchivedSession, error) {
	var s ArchivedSession
	var startStr, goalsStr string
	var endStr sql.NullString

	err := row.Scan(
		&s.ID, &s.UserID, &startStr, &endStr, &goalsStr, &s.Metrics.AnalyzedInputs,
		&s.Metrics.AverageRiskScore, &s.Metrics.EmotionalStability, &s.Metrics.EngagementLevel,
		&s.Metrics.TherapeuticProgress, &s.Metrics.InterventionEffectiveness, &s.Metrics.SessionQuality,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("archived session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning archived session: %w", err)
	}
	return r.populateArchive(&s, startStr, endStr, goalsStr)
}

func (r *SQLiteSessionArchiveRepo) scanArchiveRow(rows *sql.Rows) (*ArchivedSession, error) {
	var s ArchivedSession
	var startStr, goalsStr string
	var endStr sql.NullString

	err := rows.Scan(
		&s.ID, &s.UserID, &startStr, &endStr, &goalsStr, &s.Metrics.AnalyzedInputs,
		&s.Metrics.AverageRiskScore, &s.Metrics.EmotionalStability, &s.Metrics.EngagementLevel,
		&s.Metrics.TherapeuticProgress, &s.Metrics.InterventionEffectiveness, &s.Metrics.SessionQuality,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning archived session row: %w", err)
	}
	return r.populateArchive(&s, startStr, endStr, goalsStr)
}

func (r *SQLiteSessionArchiveRepo) populateArchive(s *ArchivedSession, startStr string, endStr sql.NullString, goalsStr string) (*ArchivedSession, error) {
	var parseErr error
	s.StartTime, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	s.EndTime = parseNullableTime(endStr, time.RFC3339)
	s.Goals = splitGoals(goalsStr)
	s.Metrics.SessionID = s.ID
	return s, nil
}

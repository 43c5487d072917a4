package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/domain"
)

// SQLiteInterventionRepo implements InterventionRepo over SQLite.
type SQLiteInterventionRepo struct {
	db db.DBTX
}

// NewSQLiteInterventionRepo creates a repo bound to the given connection or
// transaction.
func NewSQLiteInterventionRepo(conn db.DBTX) *SQLiteInterventionRepo {
	return &SQLiteInterventionRepo{db: conn}
}

func (r *SQLiteInterventionRepo) Create(ctx context.Context, rec *domain.InterventionRecord) error {
	query := `INSERT INTO interventions (id, session_id, type, action, timestamp, outcome, follow_up_required)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.SessionID,
		string(rec.Type),
		rec.Action,
		rec.Timestamp.Format(time.RFC3339),
		string(rec.Outcome),
		boolToInt(rec.FollowUpRequired),
	)
	if err != nil {
		return fmt.Errorf("inserting intervention: %w", err)
	}
	return nil
}

func (r *SQLiteInterventionRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.InterventionRecord, error) {
	query := `SELECT id, session_id, type, action, timestamp, outcome, follow_up_required
		FROM interventions WHERE session_id = ? ORDER BY timestamp, id`
	return r.list(ctx, query, sessionID)
}

func (r *SQLiteInterventionRepo) ListPendingByUser(ctx context.Context, userID string) ([]domain.InterventionRecord, error) {
	query := `SELECT i.id, i.session_id, i.type, i.action, i.timestamp, i.outcome, i.follow_up_required
		FROM interventions i
		JOIN monitoring_sessions s ON i.session_id = s.id
		WHERE s.user_id = ? AND i.outcome = 'pending'
		ORDER BY i.timestamp, i.id`
	return r.list(ctx, query, userID)
}

func (r *SQLiteInterventionRepo) UpdateOutcome(ctx context.Context, id string, outcome domain.InterventionOutcome) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE interventions SET outcome = ? WHERE id = ?`, string(outcome), id)
	if err != nil {
		return fmt.Errorf("updating intervention outcome: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking intervention update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("intervention %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteInterventionRepo) list(ctx context.Context, query string, arg string) ([]domain.InterventionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing interventions: %w", err)
	}
	defer rows.Close()

	var records []domain.InterventionRecord
	for rows.Next() {
		var rec domain.InterventionRecord
		var typeStr, timestampStr, outcomeStr string
		var followUp int

		if err := rows.Scan(&rec.ID, &rec.SessionID, &typeStr, &rec.Action, &timestampStr, &outcomeStr, &followUp); err != nil {
			return nil, fmt.Errorf("scanning intervention: %w", err)
		}
		rec.Type = domain.InterventionType(typeStr)
		rec.Outcome = domain.InterventionOutcome(outcomeStr)
		rec.FollowUpRequired = intToBool(followUp)
		rec.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			return nil, fmt.Errorf("parsing intervention timestamp: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interventions: %w", err)
	}
	return records, nil
}

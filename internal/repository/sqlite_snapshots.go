package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo over SQLite.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a repo bound to the given connection or
// transaction.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) CreateBatch(ctx context.Context, rows []EmotionalSnapshot) error {
	query := `INSERT INTO emotional_snapshots
		(id, session_id, user_id, timestamp, valence, arousal, dominance, confidence, risk_score, risk_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range rows {
		snap := &rows[i]
		_, err := r.db.ExecContext(ctx, query,
			uuid.New().String(),
			snap.SessionID,
			snap.UserID,
			snap.Timestamp.Format(time.RFC3339),
			snap.Valence,
			snap.Arousal,
			snap.Dominance,
			snap.Confidence,
			snap.RiskScore,
			string(snap.RiskLevel),
		)
		if err != nil {
			return fmt.Errorf("inserting snapshot: %w", err)
		}
	}
	return nil
}

// ListRecentByUser returns the user's most recent snapshots in chronological
// order, oldest first, capped at limit.
func (r *SQLiteSnapshotRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]EmotionalSnapshot, error) {
	query := `SELECT session_id, user_id, timestamp, valence, arousal, dominance, confidence, risk_score, risk_level
		FROM emotional_snapshots WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []EmotionalSnapshot
	for rows.Next() {
		var snap EmotionalSnapshot
		var timestampStr, levelStr string

		if err := rows.Scan(&snap.SessionID, &snap.UserID, &timestampStr,
			&snap.Valence, &snap.Arousal, &snap.Dominance,
			&snap.Confidence, &snap.RiskScore, &levelStr); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.RiskLevel = domain.RiskLevel(levelStr)
		snap.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			return nil, fmt.Errorf("parsing snapshot timestamp: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}

	// The query walks newest first to honor the limit; readers expect
	// chronological order.
	for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
		snaps[i], snaps[j] = snaps[j], snaps[i]
	}
	return snaps, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucbaten/attune/internal/db"
	"github.com/lucbaten/attune/internal/domain"
)

// SQLiteGoalProgressRepo implements GoalProgressRepo over SQLite. Progress
// entries are append-only; the main row is upserted on every log.
type SQLiteGoalProgressRepo struct {
	db db.DBTX
}

// NewSQLiteGoalProgressRepo creates a repo bound to the given connection or
// transaction.
func NewSQLiteGoalProgressRepo(conn db.DBTX) *SQLiteGoalProgressRepo {
	return &SQLiteGoalProgressRepo{db: conn}
}

func (r *SQLiteGoalProgressRepo) Upsert(ctx context.Context, gp *domain.GoalProgress) error {
	query := `INSERT INTO goal_progress (user_id, goal_id, progress, status, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, goal_id) DO UPDATE
		SET progress = excluded.progress, status = excluded.status, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		gp.UserID,
		gp.GoalID,
		gp.Progress,
		string(gp.Status),
		gp.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting goal progress: %w", err)
	}
	return nil
}

func (r *SQLiteGoalProgressRepo) Get(ctx context.Context, userID, goalID string) (*domain.GoalProgress, error) {
	query := `SELECT user_id, goal_id, progress, status, updated_at
		FROM goal_progress WHERE user_id = ? AND goal_id = ?`
	gp, err := r.scanGoal(r.db.QueryRowContext(ctx, query, userID, goalID))
	if err != nil {
		return nil, err
	}

	gp.History, err = r.listEntries(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	gp.Milestones, err = r.listMilestones(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	return gp, nil
}

func (r *SQLiteGoalProgressRepo) ListByUser(ctx context.Context, userID string) ([]*domain.GoalProgress, error) {
	query := `SELECT user_id, goal_id, progress, status, updated_at
		FROM goal_progress WHERE user_id = ? ORDER BY goal_id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goal progress: %w", err)
	}
	defer rows.Close()

	var goals []*domain.GoalProgress
	byGoal := make(map[string]*domain.GoalProgress)
	for rows.Next() {
		gp, scanErr := r.scanGoalRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		goals = append(goals, gp)
		byGoal[gp.GoalID] = gp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal progress: %w", err)
	}

	// Entries and milestones load in one query each rather than per goal.
	if err := r.attachEntries(ctx, userID, byGoal); err != nil {
		return nil, err
	}
	if err := r.attachMilestones(ctx, userID, byGoal); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *SQLiteGoalProgressRepo) AppendEntry(ctx context.Context, userID, goalID string, e domain.ProgressEntry) error {
	// Entry ids are storage-internal; the domain entry is identified by its
	// position in the history.
	query := `INSERT INTO progress_entries (id, user_id, goal_id, timestamp, progress, note)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		userID,
		goalID,
		e.Timestamp.Format(time.RFC3339),
		e.Progress,
		e.Note,
	)
	if err != nil {
		return fmt.Errorf("appending progress entry: %w", err)
	}
	return nil
}

func (r *SQLiteGoalProgressRepo) ReplaceMilestones(ctx context.Context, userID, goalID string, ms []domain.Milestone) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM milestones WHERE user_id = ? AND goal_id = ?`, userID, goalID); err != nil {
		return fmt.Errorf("clearing milestones: %w", err)
	}
	for _, m := range ms {
		id := m.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO milestones (id, user_id, goal_id, title, target_pct, reached_at) VALUES (?, ?, ?, ?, ?, ?)`,
			id, userID, goalID, m.Title, m.TargetPct, nullableTimeToString(m.ReachedAt, time.RFC3339),
		); err != nil {
			return fmt.Errorf("inserting milestone: %w", err)
		}
	}
	return nil
}

func (r *SQLiteGoalProgressRepo) MarkMilestonesReached(ctx context.Context, userID, goalID string, progress float64, at time.Time) error {
	query := `UPDATE milestones SET reached_at = ?
		WHERE user_id = ? AND goal_id = ? AND reached_at IS NULL AND target_pct <= ?`
	_, err := r.db.ExecContext(ctx, query, at.Format(time.RFC3339), userID, goalID, progress)
	if err != nil {
		return fmt.Errorf("marking milestones reached: %w", err)
	}
	return nil
}

func (r *SQLiteGoalProgressRepo) Delete(ctx context.Context, userID, goalID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM goal_progress WHERE user_id = ? AND goal_id = ?`, userID, goalID)
	if err != nil {
		return fmt.Errorf("deleting goal progress: %w", err)
	}
	return nil
}

func (r *SQLiteGoalProgressRepo) scanGoal(row *sql.Row) (*domain.GoalProgress, error) {
	var gp domain.GoalProgress
	var status, updatedAtStr string

	err := row.Scan(&gp.UserID, &gp.GoalID, &gp.Progress, &status, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal progress: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning goal progress: %w", err)
	}
	return r.populateGoal(&gp, status, updatedAtStr)
}

func (r *SQLiteGoalProgressRepo) scanGoalRow(rows *sql.Rows) (*domain.GoalProgress, error) {
	var gp domain.GoalProgress
	var status, updatedAtStr string

	if err := rows.Scan(&gp.UserID, &gp.GoalID, &gp.Progress, &status, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning goal progress row: %w", err)
	}
	return r.populateGoal(&gp, status, updatedAtStr)
}

func (r *SQLiteGoalProgressRepo) populateGoal(gp *domain.GoalProgress, status, updatedAtStr string) (*domain.GoalProgress, error) {
	gp.Status = domain.GoalStatus(status)
	var parseErr error
	gp.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return gp, nil
}

func (r *SQLiteGoalProgressRepo) listEntries(ctx context.Context, userID, goalID string) ([]domain.ProgressEntry, error) {
	query := `SELECT timestamp, progress, note FROM progress_entries
		WHERE user_id = ? AND goal_id = ? ORDER BY timestamp, id`
	rows, err := r.db.QueryContext(ctx, query, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing progress entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ProgressEntry
	for rows.Next() {
		e, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteGoalProgressRepo) attachEntries(ctx context.Context, userID string, byGoal map[string]*domain.GoalProgress) error {
	query := `SELECT goal_id, timestamp, progress, note FROM progress_entries
		WHERE user_id = ? ORDER BY timestamp, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("listing user progress entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var goalID, timestampStr string
		var e domain.ProgressEntry
		if err := rows.Scan(&goalID, &timestampStr, &e.Progress, &e.Note); err != nil {
			return fmt.Errorf("scanning progress entry: %w", err)
		}
		e.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			return fmt.Errorf("parsing entry timestamp: %w", err)
		}
		if gp, ok := byGoal[goalID]; ok {
			gp.History = append(gp.History, e)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating user progress entries: %w", err)
	}
	return nil
}

func (r *SQLiteGoalProgressRepo) listMilestones(ctx context.Context, userID, goalID string) ([]domain.Milestone, error) {
	query := `SELECT id, title, target_pct, reached_at FROM milestones
		WHERE user_id = ? AND goal_id = ? ORDER BY target_pct`
	rows, err := r.db.QueryContext(ctx, query, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var ms []domain.Milestone
	for rows.Next() {
		m, scanErr := scanMilestone(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		ms = append(ms, m.Milestone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return ms, nil
}

func (r *SQLiteGoalProgressRepo) attachMilestones(ctx context.Context, userID string, byGoal map[string]*domain.GoalProgress) error {
	query := `SELECT goal_id, id, title, target_pct, reached_at FROM milestones
		WHERE user_id = ? ORDER BY target_pct`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("listing user milestones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, scanErr := scanMilestone(rows, true)
		if scanErr != nil {
			return scanErr
		}
		if gp, ok := byGoal[m.GoalID]; ok {
			gp.Milestones = append(gp.Milestones, m.Milestone)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating user milestones: %w", err)
	}
	return nil
}

type scannedMilestone struct {
	GoalID string
	domain.Milestone
}

func scanMilestone(rows *sql.Rows, withGoalID bool) (scannedMilestone, error) {
	var m scannedMilestone
	var reachedAt sql.NullString

	var err error
	if withGoalID {
		err = rows.Scan(&m.GoalID, &m.ID, &m.Title, &m.TargetPct, &reachedAt)
	} else {
		err = rows.Scan(&m.ID, &m.Title, &m.TargetPct, &reachedAt)
	}
	if err != nil {
		return scannedMilestone{}, fmt.Errorf("scanning milestone: %w", err)
	}
	m.ReachedAt = parseNullableTime(reachedAt, time.RFC3339)
	return m, nil
}

func scanEntry(rows *sql.Rows) (domain.ProgressEntry, error) {
	var e domain.ProgressEntry
	var timestampStr string

	if err := rows.Scan(&timestampStr, &e.Progress, &e.Note); err != nil {
		return domain.ProgressEntry{}, fmt.Errorf("scanning progress entry: %w", err)
	}
	t, err := time.Parse(time.RFC3339, timestampStr)
	if err != nil {
		return domain.ProgressEntry{}, fmt.Errorf("parsing entry timestamp: %w", err)
	}
	e.Timestamp = t
	return e, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/joinpeakapp/peak/internal/db"
	"github.com/joinpeakapp/peak/internal/domain"
)

// SQLiteSessionRepo is the append-only completed-session log.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.CompletedSession) error {
	query := `INSERT INTO completed_sessions (id, workout_id, completed_at, created_at)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.WorkoutID,
		formatTime(s.CompletedAt),
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting completed session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListAll(ctx context.Context) ([]*domain.CompletedSession, error) {
	return r.list(ctx, `SELECT id, workout_id, completed_at, created_at
		FROM completed_sessions ORDER BY completed_at, created_at`)
}

func (r *SQLiteSessionRepo) ListByWorkout(ctx context.Context, workoutID string) ([]*domain.CompletedSession, error) {
	return r.list(ctx, `SELECT id, workout_id, completed_at, created_at
		FROM completed_sessions WHERE workout_id = ? ORDER BY completed_at, created_at`, workoutID)
}

func (r *SQLiteSessionRepo) list(ctx context.Context, query string, args ...any) ([]*domain.CompletedSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completed sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.CompletedSession
	for rows.Next() {
		var s domain.CompletedSession
		var completedAt, createdAt string
		if err := rows.Scan(&s.ID, &s.WorkoutID, &completedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if s.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
			return nil, fmt.Errorf("parsing completed_at: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/joinpeakapp/peak/internal/db"
	"github.com/joinpeakapp/peak/internal/domain"
)

// SQLiteWorkoutRepo is the workout catalog.
type SQLiteWorkoutRepo struct {
	db db.DBTX
}

func NewSQLiteWorkoutRepo(conn db.DBTX) *SQLiteWorkoutRepo {
	return &SQLiteWorkoutRepo{db: conn}
}

const workoutColumns = `id, name, frequency_kind, weekly_day, interval_days, created_at, updated_at`

func (r *SQLiteWorkoutRepo) Create(ctx context.Context, w *domain.Workout) error {
	kind, day, interval := frequencyColumns(w.Frequency)
	query := `INSERT INTO workouts (` + workoutColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		kind,
		day,
		interval,
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

func (r *SQLiteWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning workout: %w", err)
	}
	return w, nil
}

// List returns the catalog in creation order, which is also the order
// workouts appear within a reminder day.
func (r *SQLiteWorkoutRepo) List(ctx context.Context) ([]*domain.Workout, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workoutColumns+` FROM workouts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*domain.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout row: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}
	return workouts, nil
}

func (r *SQLiteWorkoutRepo) Update(ctx context.Context, w *domain.Workout) error {
	kind, day, interval := frequencyColumns(w.Frequency)
	res, err := r.db.ExecContext(ctx, `UPDATE workouts
		SET name = ?, frequency_kind = ?, weekly_day = ?, interval_days = ?, updated_at = ?
		WHERE id = ?`,
		w.Name, kind, day, interval, formatTime(w.UpdatedAt), w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	return requireAffected(res, "workout", w.ID)
}

func (r *SQLiteWorkoutRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return requireAffected(res, "workout", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*domain.Workout, error) {
	var (
		w                    domain.Workout
		kind                 string
		weeklyDay, interval  sql.NullInt64
		createdAt, updatedAt string
	)
	if err := row.Scan(&w.ID, &w.Name, &kind, &weeklyDay, &interval, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	w.Frequency = frequencyFromColumns(kind, weeklyDay, interval)

	var err error
	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}

package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/joinpeakapp/peak/internal/domain"
)

type WorkoutOption func(*domain.Workout)

func WithFrequency(f domain.Frequency) WorkoutOption {
	return func(w *domain.Workout) {
		w.Frequency = f
	}
}

func WithWeekly(day time.Weekday) WorkoutOption {
	return WithFrequency(domain.WeeklyOn(day))
}

func WithInterval(days int) WorkoutOption {
	return WithFrequency(domain.EveryNDays(days))
}

func WithCreatedAt(t time.Time) WorkoutOption {
	return func(w *domain.Workout) {
		w.CreatedAt = t
		w.UpdatedAt = t
	}
}

// NewTestWorkout builds a flexible workout unless options say otherwise.
func NewTestWorkout(name string, opts ...WorkoutOption) *domain.Workout {
	now := time.Now().UTC()
	w := &domain.Workout{
		ID:        uuid.New().String(),
		Name:      name,
		Frequency: domain.NoFrequency(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewTestCompletedSession(workoutID string, completedAt time.Time) *domain.CompletedSession {
	return &domain.CompletedSession{
		ID:          uuid.New().String(),
		WorkoutID:   workoutID,
		CompletedAt: completedAt,
		CreatedAt:   time.Now().UTC(),
	}
}

// Day returns midnight UTC of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

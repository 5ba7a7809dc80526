package repository

import (
	"context"

	"github.com/joinpeakapp/peak/internal/domain"
)

type WorkoutRepo interface {
	Create(ctx context.Context, w *domain.Workout) error
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context) ([]*domain.Workout, error)
	Update(ctx context.Context, w *domain.Workout) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.CompletedSession) error
	ListAll(ctx context.Context) ([]*domain.CompletedSession, error)
	ListByWorkout(ctx context.Context, workoutID string) ([]*domain.CompletedSession, error)
}

// KVStore is a durable byte store. Callers own the layout of their keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// StreakRepo persists one StreakState per workout.
type StreakRepo interface {
	// Find returns the stored state and whether one exists.
	Find(ctx context.Context, workoutID string) (*domain.StreakState, bool, error)
	// Get returns the stored state, or a fresh empty one without storing it.
	Get(ctx context.Context, workoutID string) (*domain.StreakState, error)
	Save(ctx context.Context, s *domain.StreakState) error
	ListAll(ctx context.Context) ([]*domain.StreakState, error)
	DeleteAll(ctx context.Context) (int, error)
}

type SettingsRepo interface {
	RemindersEnabled(ctx context.Context) (bool, error)
	SetRemindersEnabled(ctx context.Context, enabled bool) error
}

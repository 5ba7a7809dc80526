package service

import (
	"context"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/notify"
)

type WorkoutService interface {
	Create(ctx context.Context, w *domain.Workout) error
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context) ([]*domain.Workout, error)
	Update(ctx context.Context, w *domain.Workout) error
	Delete(ctx context.Context, id string) error
	// Resolve finds a workout by ID, unique ID prefix, or name.
	Resolve(ctx context.Context, ref string) (*domain.Workout, error)
}

// Rescheduler is the part of ReminderService other use cases trigger.
type Rescheduler interface {
	ScheduleAllReminders(ctx context.Context) (*ScheduleReport, error)
}

type ReminderService interface {
	Rescheduler
	Preview(ctx context.Context) ([]domain.DailyReminderAggregate, error)
	ListOwned(ctx context.Context) ([]notify.Notification, error)
	Enabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) (*ScheduleReport, error)
	CancelAll(ctx context.Context) (*ScheduleReport, error)
}

type StreakService interface {
	RecordWorkoutCompletion(ctx context.Context, workoutID string, completedOn time.Time) (*domain.StreakState, error)
	GetStreakState(ctx context.Context, workoutID string) (*domain.StreakState, error)
	GetDaysUntilStreakLoss(ctx context.Context, workoutID string) (int, error)
	SweepExpiredStreaks(ctx context.Context, workouts []*domain.Workout) (*SweepReport, error)
	Overview(ctx context.Context) ([]StreakOverview, error)
	ResetAll(ctx context.Context) (int, error)
}

type CompletionService interface {
	CompleteWorkout(ctx context.Context, workoutID string, at time.Time) (*CompletionResult, error)
}

// ScheduleReport summarizes one scheduling pass.
type ScheduleReport struct {
	Enabled   bool
	Cancelled int
	Scheduled int
	Failed    int
	Days      []string
}

type SweepReport struct {
	Checked int
	Expired []string
}

type StreakOverview struct {
	Workout       *domain.Workout
	State         *domain.StreakState
	DaysUntilLoss int
}

type CompletionResult struct {
	Workout  *domain.Workout
	Session  *domain.CompletedSession
	State    *domain.StreakState
	Outcome  domain.StreakOutcome
	Schedule *ScheduleReport
}

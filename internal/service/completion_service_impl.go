package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joinpeakapp/peak/internal/db"
	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/repository"
)

type completionService struct {
	uow       db.UnitOfWork
	reminders Rescheduler
	opts      StreakOptions
	logger    *slog.Logger
	observer  UseCaseObserver
}

func NewCompletionService(
	uow db.UnitOfWork,
	reminders Rescheduler,
	opts StreakOptions,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) CompletionService {
	return &completionService{
		uow:       uow,
		reminders: reminders,
		opts:      opts.withDefaults(),
		logger:    loggerOrDiscard(logger),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// CompleteWorkout logs a completed session and advances the streak in one
// transaction, then reschedules reminders. If the transaction fails nothing
// is stored; the result still carries the computed streak state when the
// failure came from persisting it.
func (s *completionService) CompleteWorkout(ctx context.Context, workoutID string, at time.Time) (result *CompletionResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"workout_id": workoutID}
	defer func() {
		if result != nil && result.State != nil {
			fields["outcome"] = string(result.Outcome)
			fields["current"] = result.State.Current
		}
		observe(ctx, s.observer, "complete-workout", startedAt, fields, err)
	}()

	at = at.In(s.opts.Location)
	result = &CompletionResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkouts := repository.NewSQLiteWorkoutRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txStreaks := repository.NewKVStreakStore(repository.NewSQLiteKVStore(tx), s.opts.Location)

		w, err := txWorkouts.GetByID(ctx, workoutID)
		if err != nil {
			return err
		}
		result.Workout = w

		session := &domain.CompletedSession{
			ID:          uuid.New().String(),
			WorkoutID:   w.ID,
			CompletedAt: at,
			CreatedAt:   time.Now().UTC(),
		}
		if err := txSessions.Create(ctx, session); err != nil {
			return err
		}
		result.Session = session

		state, outcome, err := applyCompletion(ctx, txStreaks, w, at, s.opts.Policy)
		result.State = state
		result.Outcome = outcome
		return err
	})
	if err != nil {
		if result.State == nil {
			return nil, err
		}
		return result, err
	}

	result.Schedule = rescheduleAfterCompletion(ctx, s.reminders, result.Workout, s.logger)
	return result, nil
}

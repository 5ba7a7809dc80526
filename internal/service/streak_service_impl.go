package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/multierr"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/repository"
)

type streakService struct {
	workouts  repository.WorkoutRepo
	streaks   repository.StreakRepo
	reminders Rescheduler
	opts      StreakOptions
	logger    *slog.Logger
	observer  UseCaseObserver
}

// NewStreakService wires the streak engine. reminders may be nil, in which
// case completions do not trigger a scheduling pass.
func NewStreakService(
	workouts repository.WorkoutRepo,
	streaks repository.StreakRepo,
	reminders Rescheduler,
	opts StreakOptions,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) StreakService {
	return &streakService{
		workouts:  workouts,
		streaks:   streaks,
		reminders: reminders,
		opts:      opts.withDefaults(),
		logger:    loggerOrDiscard(logger),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// RecordWorkoutCompletion applies a completion to the workout's streak and
// persists it. If persisting fails the computed state is still returned
// together with an ErrStorageWriteFailed error.
func (s *streakService) RecordWorkoutCompletion(ctx context.Context, workoutID string, completedOn time.Time) (state *domain.StreakState, err error) {
	startedAt := time.Now()
	fields := map[string]any{"workout_id": workoutID}
	defer func() {
		if state != nil {
			fields["current"] = state.Current
			fields["longest"] = state.Longest
		}
		observe(ctx, s.observer, "record-workout-completion", startedAt, fields, err)
	}()

	w, err := s.workouts.GetByID(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("loading workout: %w", err)
	}

	state, outcome, err := applyCompletion(ctx, s.streaks, w, completedOn.In(s.opts.Location), s.opts.Policy)
	fields["outcome"] = string(outcome)
	rescheduleAfterCompletion(ctx, s.reminders, w, s.logger)
	return state, err
}

func (s *streakService) GetStreakState(ctx context.Context, workoutID string) (*domain.StreakState, error) {
	return s.streaks.Get(ctx, workoutID)
}

func (s *streakService) GetDaysUntilStreakLoss(ctx context.Context, workoutID string) (int, error) {
	w, err := s.workouts.GetByID(ctx, workoutID)
	if err != nil {
		return 0, fmt.Errorf("loading workout: %w", err)
	}
	state, err := s.streaks.Get(ctx, workoutID)
	if err != nil {
		return 0, err
	}
	return state.DaysUntilLoss(w.Frequency, s.opts.today(), s.opts.Policy), nil
}

// SweepExpiredStreaks clears the live run of every stored streak whose
// window has lapsed. Workouts without a stored streak are skipped. A failure
// on one workout does not stop the others.
func (s *streakService) SweepExpiredStreaks(ctx context.Context, workouts []*domain.Workout) (report *SweepReport, err error) {
	startedAt := time.Now()
	report = &SweepReport{}
	defer func() {
		observe(ctx, s.observer, "sweep-expired-streaks", startedAt, map[string]any{
			"checked": report.Checked,
			"expired": len(report.Expired),
		}, err)
	}()

	today := s.opts.today()
	for _, w := range workouts {
		state, ok, findErr := s.streaks.Find(ctx, w.ID)
		if findErr != nil {
			s.logger.WarnContext(ctx, "reading streak failed during sweep", "workout_id", w.ID, "error", findErr)
			err = multierr.Append(err, findErr)
			continue
		}
		if !ok {
			continue
		}
		report.Checked++
		if !state.ExpireIfLapsed(w.Frequency, today, s.opts.Policy) {
			continue
		}
		if saveErr := s.streaks.Save(ctx, state); saveErr != nil {
			s.logger.WarnContext(ctx, "saving expired streak failed", "workout_id", w.ID, "error", saveErr)
			err = multierr.Append(err, fmt.Errorf("%w: %w", ErrStorageWriteFailed, saveErr))
			continue
		}
		report.Expired = append(report.Expired, w.ID)
	}
	return report, err
}

// Overview returns the streak of every catalog workout in catalog order.
func (s *streakService) Overview(ctx context.Context) ([]StreakOverview, error) {
	workouts, err := s.workouts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	today := s.opts.today()
	out := make([]StreakOverview, 0, len(workouts))
	for _, w := range workouts {
		state, err := s.streaks.Get(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, StreakOverview{
			Workout:       w,
			State:         state,
			DaysUntilLoss: state.DaysUntilLoss(w.Frequency, today, s.opts.Policy),
		})
	}
	return out, nil
}

// ResetAll deletes every stored streak.
func (s *streakService) ResetAll(ctx context.Context) (n int, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "reset-streaks", startedAt, map[string]any{"deleted": n}, err)
	}()
	return s.streaks.DeleteAll(ctx)
}

// applyCompletion loads, advances and saves one workout's streak. When the
// save fails the advanced state is returned with the error.
func applyCompletion(ctx context.Context, streaks repository.StreakRepo, w *domain.Workout, on time.Time, policy domain.WindowPolicy) (*domain.StreakState, domain.StreakOutcome, error) {
	state, err := streaks.Get(ctx, w.ID)
	if err != nil {
		return nil, "", fmt.Errorf("loading streak: %w", err)
	}
	outcome := state.RecordCompletion(w.Frequency, on, policy)
	if err := streaks.Save(ctx, state); err != nil {
		return state, outcome, fmt.Errorf("%w: %w", ErrStorageWriteFailed, err)
	}
	return state, outcome, nil
}

// rescheduleAfterCompletion runs a scheduling pass unless the workout never
// gets reminders. Failures are logged only.
func rescheduleAfterCompletion(ctx context.Context, reminders Rescheduler, w *domain.Workout, logger *slog.Logger) *ScheduleReport {
	if reminders == nil || w == nil || !w.Frequency.Schedulable() {
		return nil
	}
	report, err := reminders.ScheduleAllReminders(ctx)
	if err != nil {
		logger.WarnContext(ctx, "rescheduling after completion finished with errors", "workout_id", w.ID, "error", err)
	}
	return report
}

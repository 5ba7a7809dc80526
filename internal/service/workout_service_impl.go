package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/repository"
)

// minIDPrefix is the shortest ID prefix Resolve accepts.
const minIDPrefix = 4

type workoutService struct {
	workouts  repository.WorkoutRepo
	reminders Rescheduler
	logger    *slog.Logger
	observer  UseCaseObserver
}

// NewWorkoutService builds the catalog service. Catalog changes trigger a
// scheduling pass when reminders is non-nil.
func NewWorkoutService(workouts repository.WorkoutRepo, reminders Rescheduler, logger *slog.Logger, observers ...UseCaseObserver) WorkoutService {
	return &workoutService{
		workouts:  workouts,
		reminders: reminders,
		logger:    loggerOrDiscard(logger),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *workoutService) Create(ctx context.Context, w *domain.Workout) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "create-workout", startedAt, map[string]any{"frequency": w.Frequency.String()}, err)
	}()

	w.Name = strings.TrimSpace(w.Name)
	if err := w.Validate(); err != nil {
		return err
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	if err := s.workouts.Create(ctx, w); err != nil {
		return err
	}
	s.reschedule(ctx)
	return nil
}

func (s *workoutService) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	return s.workouts.GetByID(ctx, id)
}

func (s *workoutService) List(ctx context.Context) ([]*domain.Workout, error) {
	return s.workouts.List(ctx)
}

func (s *workoutService) Update(ctx context.Context, w *domain.Workout) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "update-workout", startedAt, map[string]any{"workout_id": w.ID}, err)
	}()

	w.Name = strings.TrimSpace(w.Name)
	if err := w.Validate(); err != nil {
		return err
	}
	w.UpdatedAt = time.Now().UTC()
	if err := s.workouts.Update(ctx, w); err != nil {
		return err
	}
	s.reschedule(ctx)
	return nil
}

// Delete removes the workout from the catalog. Its streak record is kept.
func (s *workoutService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "delete-workout", startedAt, map[string]any{"workout_id": id}, err)
	}()

	if err := s.workouts.Delete(ctx, id); err != nil {
		return err
	}
	s.reschedule(ctx)
	return nil
}

func (s *workoutService) Resolve(ctx context.Context, ref string) (*domain.Workout, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("workout reference is empty: %w", repository.ErrNotFound)
	}

	w, err := s.workouts.GetByID(ctx, ref)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := s.workouts.List(ctx)
	if err != nil {
		return nil, err
	}
	var byName, byPrefix []*domain.Workout
	for _, w := range all {
		if strings.EqualFold(w.Name, ref) {
			byName = append(byName, w)
		}
		if len(ref) >= minIDPrefix && strings.HasPrefix(w.ID, ref) {
			byPrefix = append(byPrefix, w)
		}
	}
	for _, matches := range [][]*domain.Workout{byName, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("%q matches %d workouts: %w", ref, len(matches), ErrAmbiguousWorkout)
		}
	}
	return nil, fmt.Errorf("workout %q: %w", ref, repository.ErrNotFound)
}

func (s *workoutService) reschedule(ctx context.Context) {
	if s.reminders == nil {
		return
	}
	if _, err := s.reminders.ScheduleAllReminders(ctx); err != nil {
		s.logger.WarnContext(ctx, "rescheduling after catalog change finished with errors", "error", err)
	}
}

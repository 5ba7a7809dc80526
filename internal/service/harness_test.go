package service_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/message"
	"github.com/joinpeakapp/peak/internal/reminder"
	"github.com/joinpeakapp/peak/internal/repository"
	"github.com/joinpeakapp/peak/internal/service"
	"github.com/joinpeakapp/peak/internal/testutil"
	"github.com/stretchr/testify/require"
)

// monday0800 is the default "now" of the harness.
var monday0800 = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

type harness struct {
	db       *sql.DB
	workouts *repository.SQLiteWorkoutRepo
	sessions *repository.SQLiteSessionRepo
	kv       *repository.SQLiteKVStore
	streaks  *repository.KVStreakStore
	settings *repository.KVSettingsStore
	notifier *testutil.FakeNotifier
	clock    *testutil.FixedClock
	composer *recordingComposer
	observer *recordingObserver

	reminders  service.ReminderService
	streakSvc  service.StreakService
	completion service.CompletionService
	catalog    service.WorkoutService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	h := &harness{
		db:       database,
		workouts: repository.NewSQLiteWorkoutRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		kv:       repository.NewSQLiteKVStore(database),
		notifier: testutil.NewFakeNotifier(),
		clock:    testutil.NewFixedClock(monday0800),
		composer: &recordingComposer{next: message.NewVariantComposer()},
		observer: &recordingObserver{},
	}
	h.streaks = repository.NewKVStreakStore(h.kv, time.UTC)
	h.settings = repository.NewKVSettingsStore(h.kv)

	h.reminders = service.NewReminderService(h.workouts, h.sessions, h.settings, h.notifier, h.composer, h.reminderOptions(), nil, h.observer)
	h.streakSvc = service.NewStreakService(h.workouts, h.streaks, h.reminders, h.streakOptions(), nil, h.observer)
	h.completion = service.NewCompletionService(testutil.NewTestUoW(database), h.reminders, h.streakOptions(), nil, h.observer)
	h.catalog = service.NewWorkoutService(h.workouts, nil, nil, h.observer)
	return h
}

func (h *harness) reminderOptions() service.ReminderOptions {
	s := reminder.DefaultSettings()
	s.Location = time.UTC
	return service.ReminderOptions{
		Settings:    s,
		CallTimeout: time.Second,
		Concurrency: 4,
		Now:         h.clock.Now,
	}
}

func (h *harness) streakOptions() service.StreakOptions {
	return service.StreakOptions{
		Policy:   domain.DefaultWindowPolicy(),
		Location: time.UTC,
		Now:      h.clock.Now,
	}
}

func (h *harness) addWorkout(t *testing.T, name string, opts ...testutil.WorkoutOption) *domain.Workout {
	t.Helper()
	w := testutil.NewTestWorkout(name, opts...)
	w.CreatedAt = monday0800.Add(time.Duration(len(h.mustList(t))) * time.Minute)
	w.UpdatedAt = w.CreatedAt
	require.NoError(t, h.workouts.Create(context.Background(), w))
	return w
}

func (h *harness) addSession(t *testing.T, workoutID string, at time.Time) {
	t.Helper()
	require.NoError(t, h.sessions.Create(context.Background(), testutil.NewTestCompletedSession(workoutID, at)))
}

func (h *harness) mustList(t *testing.T) []*domain.Workout {
	t.Helper()
	all, err := h.workouts.List(context.Background())
	require.NoError(t, err)
	return all
}

// ownedIDs lists the IDs of scheduled workout reminders.
func (h *harness) ownedIDs() []string {
	var ids []string
	for _, n := range h.notifier.Snapshot() {
		if service.IsOwnedReminder(n) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

type recordingComposer struct {
	mu    sync.Mutex
	next  message.Composer
	calls [][]string
}

func (c *recordingComposer) Compose(names []string) message.Content {
	c.mu.Lock()
	c.calls = append(c.calls, append([]string(nil), names...))
	c.mu.Unlock()
	return c.next.Compose(names)
}

func (c *recordingComposer) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []service.UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (service.UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return service.UseCaseEvent{}, false
}

var errStorage = errors.New("disk full")

// failingWorkoutRepo fails List; everything else is unused.
type failingWorkoutRepo struct {
	repository.WorkoutRepo
}

func (failingWorkoutRepo) List(context.Context) ([]*domain.Workout, error) {
	return nil, errStorage
}

type failingSessionRepo struct {
	repository.SessionRepo
}

func (failingSessionRepo) ListAll(context.Context) ([]*domain.CompletedSession, error) {
	return nil, errStorage
}

type failingSettings struct{}

func (failingSettings) RemindersEnabled(context.Context) (bool, error) { return false, errStorage }
func (failingSettings) SetRemindersEnabled(context.Context, bool) error { return errStorage }

// failingSaveStreaks reads from the real store but never saves.
type failingSaveStreaks struct {
	repository.StreakRepo
}

func (failingSaveStreaks) Save(context.Context, *domain.StreakState) error {
	return errStorage
}

type countingRescheduler struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRescheduler) ScheduleAllReminders(context.Context) (*service.ScheduleReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return &service.ScheduleReport{Enabled: true}, nil
}

func (r *countingRescheduler) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

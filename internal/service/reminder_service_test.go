package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/joinpeakapp/peak/internal/notify"
	"github.com/joinpeakapp/peak/internal/service"
	"github.com/joinpeakapp/peak/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
)

// seedPlan creates two Friday workouts and one every-3-days workout last
// completed on Monday morning.
func seedPlan(t *testing.T, h *harness) {
	t.Helper()
	h.addWorkout(t, "Push", testutil.WithWeekly(time.Friday))
	h.addWorkout(t, "Pull", testutil.WithWeekly(time.Friday))
	core := h.addWorkout(t, "Core", testutil.WithInterval(3))
	h.addWorkout(t, "Yoga")
	h.addSession(t, core.ID, time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC))
}

func TestScheduleAllReminders_OnePerDay(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)

	report, err := h.reminders.ScheduleAllReminders(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Enabled)
	assert.Equal(t, 5, report.Scheduled)
	assert.Zero(t, report.Failed)
	assert.Equal(t, []string{"2024-01-04", "2024-01-05", "2024-01-12", "2024-01-19", "2024-01-26"}, report.Days)
	assert.Equal(t, []string{
		"workout-reminder-2024-01-04",
		"workout-reminder-2024-01-05",
		"workout-reminder-2024-01-12",
		"workout-reminder-2024-01-19",
		"workout-reminder-2024-01-26",
	}, h.ownedIDs())

	friday := h.notifier.Snapshot()[1]
	assert.Equal(t, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), friday.FireAt)
	assert.Equal(t, "workout_reminder", friday.Data["type"])
	assert.Equal(t, "2024-01-05", friday.Data["day"])
	assert.Contains(t, friday.Body, "Push and Pull")
}

func TestScheduleAllReminders_ComposesOncePerDay(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)

	_, err := h.reminders.ScheduleAllReminders(context.Background())
	require.NoError(t, err)

	require.Len(t, h.composer.calls, 5)
	assert.Equal(t, []string{"Core"}, h.composer.calls[0])
	for _, call := range h.composer.calls[1:] {
		assert.Equal(t, []string{"Push", "Pull"}, call, "shared Friday composed once with both names")
	}
}

func TestScheduleAllReminders_Idempotent(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	ctx := context.Background()

	_, err := h.reminders.ScheduleAllReminders(ctx)
	require.NoError(t, err)
	first := h.notifier.Snapshot()

	report, err := h.reminders.ScheduleAllReminders(ctx)
	require.NoError(t, err)
	second := h.notifier.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, 5, report.Cancelled, "second pass replaces everything it owns")
	assert.Equal(t, 5, report.Scheduled)
}

func TestScheduleAllReminders_LeavesForeignNotifications(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	foreign := notify.Notification{ID: "promo-1", FireAt: monday0800.Add(time.Hour), Title: "Sale", Data: map[string]string{"type": "promo"}}
	h.notifier.Seed(foreign)
	h.notifier.Seed(notify.Notification{ID: "legacy", FireAt: monday0800, Data: map[string]string{"type": "workout_reminder"}})
	h.notifier.Seed(notify.Notification{ID: "workout-reminder-2023-12-30", FireAt: monday0800})

	report, err := h.reminders.ScheduleAllReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Cancelled, "owned by payload tag or by identifier")
	ids := map[string]bool{}
	for _, n := range h.notifier.Snapshot() {
		ids[n.ID] = true
	}
	assert.True(t, ids["promo-1"])
	assert.False(t, ids["legacy"])
	assert.False(t, ids["workout-reminder-2023-12-30"])
}

func TestScheduleAllReminders_DisabledCancelsOwned(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	ctx := context.Background()
	h.notifier.Seed(notify.Notification{ID: "promo-1", FireAt: monday0800, Data: map[string]string{"type": "promo"}})

	_, err := h.reminders.ScheduleAllReminders(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, h.ownedIDs())

	report, err := h.reminders.SetEnabled(ctx, false)
	require.NoError(t, err)
	assert.False(t, report.Enabled)
	assert.Equal(t, 5, report.Cancelled)
	assert.Zero(t, report.Scheduled)
	assert.Empty(t, h.ownedIDs())
	assert.Len(t, h.notifier.Snapshot(), 1)

	enabled, err := h.reminders.Enabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	report, err = h.reminders.SetEnabled(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Scheduled)
}

func TestScheduleAllReminders_EmptyCatalogCancelsAll(t *testing.T) {
	h := newHarness(t)
	h.notifier.Seed(notify.Notification{ID: service.ReminderID("2024-01-02"), FireAt: monday0800})

	report, err := h.reminders.ScheduleAllReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Cancelled)
	assert.Zero(t, report.Scheduled)
	assert.Empty(t, h.ownedIDs())
}

func TestScheduleAllReminders_CatalogUnavailable(t *testing.T) {
	h := newHarness(t)
	h.notifier.Seed(notify.Notification{ID: service.ReminderID("2024-01-02"), FireAt: monday0800})
	svc := service.NewReminderService(failingWorkoutRepo{}, h.sessions, h.settings, h.notifier, nil, h.reminderOptions(), nil)

	report, err := svc.ScheduleAllReminders(context.Background())
	require.ErrorIs(t, err, service.ErrCatalogUnavailable)
	assert.ErrorIs(t, err, errStorage)
	assert.Equal(t, 1, report.Cancelled, "treated as an empty catalog")
	assert.Empty(t, h.ownedIDs())
}

func TestScheduleAllReminders_HistoryUnavailableSkipsIntervals(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	svc := service.NewReminderService(h.workouts, failingSessionRepo{}, h.settings, h.notifier, nil, h.reminderOptions(), nil)

	report, err := svc.ScheduleAllReminders(context.Background())
	require.ErrorIs(t, err, service.ErrHistoryUnavailable)
	assert.Equal(t, []string{"2024-01-05", "2024-01-12", "2024-01-19", "2024-01-26"}, report.Days)
}

func TestScheduleAllReminders_UnreadableToggleMeansDisabled(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	h.notifier.Seed(notify.Notification{ID: service.ReminderID("2024-01-02"), FireAt: monday0800})
	svc := service.NewReminderService(h.workouts, h.sessions, failingSettings{}, h.notifier, nil, h.reminderOptions(), nil)

	report, err := svc.ScheduleAllReminders(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Enabled)
	assert.Empty(t, h.ownedIDs())
}

func TestScheduleAllReminders_ContinuesPastItemFailures(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	ctx := context.Background()
	h.notifier.Seed(notify.Notification{ID: service.ReminderID("2023-12-31"), FireAt: monday0800})
	h.notifier.FailCancel[service.ReminderID("2023-12-31")] = true
	h.notifier.FailSchedule[service.ReminderID("2024-01-12")] = true

	report, err := h.reminders.ScheduleAllReminders(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotificationCallFailed)
	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.Len(t, multierr.Errors(err), 2)

	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 4, report.Scheduled)
	assert.NotContains(t, report.Days, "2024-01-12")
	assert.Contains(t, h.ownedIDs(), service.ReminderID("2024-01-19"))

	event, ok := h.observer.last("schedule-all-reminders")
	require.True(t, ok)
	assert.False(t, event.Success)
	assert.Equal(t, 2, event.Fields["failed"])
}

func TestScheduleAllReminders_ListFailureStillSchedules(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	ctrl := gomock.NewController(t)
	mock := NewMockService(ctrl)

	mock.EXPECT().ListScheduled(gomock.Any()).Return(nil, errors.New("service unavailable"))
	mock.EXPECT().Cancel(gomock.Any(), gomock.Any()).Times(0)
	mock.EXPECT().ScheduleAt(gomock.Any(), gomock.Any()).Return(nil).Times(5)

	svc := service.NewReminderService(h.workouts, h.sessions, h.settings, mock, nil, h.reminderOptions(), nil)
	report, err := svc.ScheduleAllReminders(context.Background())

	require.ErrorIs(t, err, service.ErrNotificationCallFailed)
	assert.Equal(t, 5, report.Scheduled)
	assert.Equal(t, 1, report.Failed)
}

func TestScheduleAllReminders_PerCallTimeout(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	ctrl := gomock.NewController(t)
	mock := NewMockService(ctrl)

	mock.EXPECT().ListScheduled(gomock.Any()).Return(nil, nil)
	mock.EXPECT().ScheduleAt(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, n notify.Notification) error {
			if n.ID == service.ReminderID("2024-01-05") {
				<-ctx.Done()
				return ctx.Err()
			}
			return nil
		}).Times(5)

	opts := h.reminderOptions()
	opts.CallTimeout = 30 * time.Millisecond
	svc := service.NewReminderService(h.workouts, h.sessions, h.settings, mock, nil, opts, nil)

	start := time.Now()
	report, err := svc.ScheduleAllReminders(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 4, report.Scheduled)
	assert.Equal(t, 1, report.Failed)
}

func TestScheduleAllReminders_ConcurrentPassesConverge(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.reminders.ScheduleAllReminders(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, h.ownedIDs(), 5)
}

func TestScheduleAllReminders_CompletionMovesIntervalReminder(t *testing.T) {
	h := newHarness(t)
	core := h.addWorkout(t, "Core", testutil.WithInterval(3))
	ctx := context.Background()

	report, err := h.reminders.ScheduleAllReminders(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Scheduled, "no reminder before the first completion")

	_, err = h.completion.CompleteWorkout(ctx, core.ID, monday0800)
	require.NoError(t, err)
	assert.Equal(t, []string{service.ReminderID("2024-01-04")}, h.ownedIDs())

	h.clock.Set(time.Date(2024, 1, 3, 18, 0, 0, 0, time.UTC))
	_, err = h.completion.CompleteWorkout(ctx, core.ID, h.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{service.ReminderID("2024-01-06")}, h.ownedIDs())
}

func TestPreview_DoesNotTouchNotifications(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)

	aggs, err := h.reminders.Preview(context.Background())
	require.NoError(t, err)
	assert.Len(t, aggs, 5)
	assert.Equal(t, []string{"Push", "Pull"}, aggs[1].WorkoutNames())
	assert.Zero(t, h.notifier.ScheduleCalls)
	assert.Zero(t, h.notifier.CancelCalls)
}

func TestCancelAll_IgnoresToggle(t *testing.T) {
	h := newHarness(t)
	seedPlan(t, h)
	ctx := context.Background()
	_, err := h.reminders.ScheduleAllReminders(ctx)
	require.NoError(t, err)

	report, err := h.reminders.CancelAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Cancelled)
	assert.Empty(t, h.ownedIDs())

	owned, err := h.reminders.ListOwned(ctx)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

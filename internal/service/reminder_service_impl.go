package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/message"
	"github.com/joinpeakapp/peak/internal/notify"
	"github.com/joinpeakapp/peak/internal/reminder"
	"github.com/joinpeakapp/peak/internal/repository"
)

const (
	// ReminderIDPrefix starts the identifier of every workout reminder.
	ReminderIDPrefix = "workout-reminder-"
	// ReminderPayloadType tags workout reminders in the payload.
	ReminderPayloadType = "workout_reminder"
)

// ReminderID derives the stable identifier for a calendar-day key.
func ReminderID(day string) string {
	return ReminderIDPrefix + day
}

// IsOwnedReminder reports whether n was created by the reminder scheduler.
// Notifications of other features are never touched.
func IsOwnedReminder(n notify.Notification) bool {
	return n.Data["type"] == ReminderPayloadType || strings.HasPrefix(n.ID, ReminderIDPrefix)
}

type reminderService struct {
	workouts repository.WorkoutRepo
	sessions repository.SessionRepo
	settings repository.SettingsRepo
	notifier notify.Service
	composer message.Composer
	opts     ReminderOptions
	logger   *slog.Logger
	observer UseCaseObserver

	// mu serializes passes so a cancel from one pass never lands after a
	// create from another.
	mu sync.Mutex
}

func NewReminderService(
	workouts repository.WorkoutRepo,
	sessions repository.SessionRepo,
	settings repository.SettingsRepo,
	notifier notify.Service,
	composer message.Composer,
	opts ReminderOptions,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ReminderService {
	opts = opts.withDefaults()
	if composer == nil {
		composer = message.NewVariantComposer()
	}
	return &reminderService{
		workouts: workouts,
		sessions: sessions,
		settings: settings,
		notifier: notify.WithTimeout(notifier, opts.CallTimeout),
		composer: composer,
		opts:     opts,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// ScheduleAllReminders replaces every owned reminder with the freshly
// computed set. Per-item failures are logged and combined into the returned
// error; the report is always returned.
func (s *reminderService) ScheduleAllReminders(ctx context.Context) (report *ScheduleReport, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		if report != nil {
			fields["enabled"] = report.Enabled
			fields["cancelled"] = report.Cancelled
			fields["scheduled"] = report.Scheduled
			fields["failed"] = report.Failed
		}
		observe(ctx, s.observer, "schedule-all-reminders", startedAt, fields, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runPass(ctx, false)
}

// CancelAll removes every owned reminder regardless of the toggle.
func (s *reminderService) CancelAll(ctx context.Context) (report *ScheduleReport, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "cancel-all-reminders", startedAt, nil, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runPass(ctx, true)
}

func (s *reminderService) Enabled(ctx context.Context) (bool, error) {
	return s.settings.RemindersEnabled(ctx)
}

// SetEnabled stores the toggle and immediately runs a pass, so disabling
// clears reminders and enabling restores them.
func (s *reminderService) SetEnabled(ctx context.Context, enabled bool) (*ScheduleReport, error) {
	if err := s.settings.SetRemindersEnabled(ctx, enabled); err != nil {
		return nil, err
	}
	return s.ScheduleAllReminders(ctx)
}

// Preview computes the aggregates a pass would schedule without touching the
// notification service.
func (s *reminderService) Preview(ctx context.Context) ([]domain.DailyReminderAggregate, error) {
	workouts, err := s.workouts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	sessions, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}
	return reminder.BuildAggregates(workouts, sessions, s.opts.Now(), s.opts.Settings), nil
}

func (s *reminderService) ListOwned(ctx context.Context) ([]notify.Notification, error) {
	all, err := s.notifier.ListScheduled(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotificationCallFailed, err)
	}
	var owned []notify.Notification
	for _, n := range all {
		if IsOwnedReminder(n) {
			owned = append(owned, n)
		}
	}
	return owned, nil
}

// runPass must be called with mu held.
func (s *reminderService) runPass(ctx context.Context, cancelOnly bool) (*ScheduleReport, error) {
	report := &ScheduleReport{}
	var errs error

	var aggregates []domain.DailyReminderAggregate
	if !cancelOnly {
		report.Enabled = s.remindersEnabled(ctx)
		if report.Enabled {
			var err error
			aggregates, err = s.computeAggregates(ctx)
			errs = multierr.Append(errs, err)
		}
	}

	cancelled, failed, err := s.cancelOwned(ctx)
	report.Cancelled = cancelled
	report.Failed += failed
	errs = multierr.Append(errs, err)

	scheduled, days, failed, err := s.createAll(ctx, aggregates)
	report.Scheduled = scheduled
	report.Days = days
	report.Failed += failed
	errs = multierr.Append(errs, err)

	return report, errs
}

// remindersEnabled treats an unreadable toggle as off.
func (s *reminderService) remindersEnabled(ctx context.Context) bool {
	enabled, err := s.settings.RemindersEnabled(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "reminders toggle unreadable, treating as disabled", "error", err)
		return false
	}
	return enabled
}

func (s *reminderService) computeAggregates(ctx context.Context) ([]domain.DailyReminderAggregate, error) {
	workouts, err := s.workouts.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "workout catalog unreadable, cancelling reminders", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if len(workouts) == 0 {
		return nil, nil
	}

	var errs error
	sessions, err := s.sessions.ListAll(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "completion history unreadable, interval reminders skipped", "error", err)
		errs = fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
		sessions = nil
	}
	return reminder.BuildAggregates(workouts, sessions, s.opts.Now(), s.opts.Settings), errs
}

func (s *reminderService) cancelOwned(ctx context.Context) (cancelled, failed int, err error) {
	owned, err := s.ListOwned(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "listing scheduled reminders failed", "error", err)
		return 0, 1, err
	}

	errs := s.forEach(ctx, len(owned), func(ctx context.Context, i int) error {
		return s.notifier.Cancel(ctx, owned[i].ID)
	})
	for i, e := range errs {
		if e != nil {
			s.logger.WarnContext(ctx, "cancelling reminder failed", "reminder_id", owned[i].ID, "error", e)
			err = multierr.Append(err, fmt.Errorf("%w: cancel %s: %w", ErrNotificationCallFailed, owned[i].ID, e))
			failed++
			continue
		}
		cancelled++
	}
	return cancelled, failed, err
}

func (s *reminderService) createAll(ctx context.Context, aggregates []domain.DailyReminderAggregate) (scheduled int, days []string, failed int, err error) {
	notifications := make([]notify.Notification, len(aggregates))
	for i, agg := range aggregates {
		notifications[i] = s.buildNotification(agg)
	}

	errs := s.forEach(ctx, len(notifications), func(ctx context.Context, i int) error {
		return s.notifier.ScheduleAt(ctx, notifications[i])
	})
	for i, e := range errs {
		day := aggregates[i].Day
		if e != nil {
			s.logger.WarnContext(ctx, "scheduling reminder failed", "reminder_id", notifications[i].ID, "day", day, "error", e)
			err = multierr.Append(err, fmt.Errorf("%w: schedule %s: %w", ErrNotificationCallFailed, notifications[i].ID, e))
			failed++
			continue
		}
		scheduled++
		days = append(days, day)
	}
	return scheduled, days, failed, err
}

func (s *reminderService) buildNotification(agg domain.DailyReminderAggregate) notify.Notification {
	content := s.composer.Compose(agg.WorkoutNames())
	return notify.Notification{
		ID:     ReminderID(agg.Day),
		FireAt: agg.At,
		Title:  content.Title,
		Body:   content.Body,
		Data: map[string]string{
			"type":        ReminderPayloadType,
			"day":         agg.Day,
			"workout_ids": strings.Join(agg.WorkoutIDs(), ","),
		},
	}
}

// forEach runs fn for every index with bounded concurrency. Each call's
// error lands in its own slot; one failure never stops the others.
func (s *reminderService) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			errs[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/joinpeakapp/peak/internal/notify"
)

var ErrInjected = errors.New("injected notification failure")

// FakeNotifier is an in-memory notify.Service. FailSchedule and FailCancel
// make calls for the listed IDs fail; FailList makes ListScheduled fail.
type FakeNotifier struct {
	mu        sync.Mutex
	scheduled map[string]notify.Notification

	FailSchedule map[string]bool
	FailCancel   map[string]bool
	FailList     bool

	ScheduleCalls int
	CancelCalls   int
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{
		scheduled:    make(map[string]notify.Notification),
		FailSchedule: make(map[string]bool),
		FailCancel:   make(map[string]bool),
	}
}

func (f *FakeNotifier) ScheduleAt(ctx context.Context, n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScheduleCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.FailSchedule[n.ID] {
		return fmt.Errorf("schedule %s: %w", n.ID, ErrInjected)
	}
	f.scheduled[n.ID] = n
	return nil
}

func (f *FakeNotifier) Cancel(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CancelCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.FailCancel[id] {
		return fmt.Errorf("cancel %s: %w", id, ErrInjected)
	}
	if _, ok := f.scheduled[id]; !ok {
		return fmt.Errorf("notification %s: %w", id, notify.ErrNotificationNotFound)
	}
	delete(f.scheduled, id)
	return nil
}

func (f *FakeNotifier) ListScheduled(ctx context.Context) ([]notify.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailList {
		return nil, fmt.Errorf("list: %w", ErrInjected)
	}
	return f.snapshot(), nil
}

// Seed places a notification without counting it as a call.
func (f *FakeNotifier) Seed(n notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled[n.ID] = n
}

// Snapshot returns the scheduled set ordered by fire time, then ID.
func (f *FakeNotifier) Snapshot() []notify.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *FakeNotifier) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScheduleCalls = 0
	f.CancelCalls = 0
}

func (f *FakeNotifier) snapshot() []notify.Notification {
	out := make([]notify.Notification, 0, len(f.scheduled))
	for _, n := range f.scheduled {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].FireAt.Before(out[j].FireAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var _ notify.Service = (*FakeNotifier)(nil)

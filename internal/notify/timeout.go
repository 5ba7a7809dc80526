package notify

import (
	"context"
	"time"
)

const DefaultCallTimeout = 3 * time.Second

// WithTimeout bounds every call to next by d. A call returns once d has
// elapsed even when next ignores its context; that call keeps running in
// the background and its result is dropped.
func WithTimeout(next Service, d time.Duration) Service {
	if d <= 0 {
		d = DefaultCallTimeout
	}
	return &timeoutService{next: next, timeout: d}
}

type timeoutService struct {
	next    Service
	timeout time.Duration
}

func (s *timeoutService) ScheduleAt(ctx context.Context, n Notification) error {
	_, err := bounded(ctx, s.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.ScheduleAt(ctx, n)
	})
	return err
}

func (s *timeoutService) Cancel(ctx context.Context, id string) error {
	_, err := bounded(ctx, s.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.Cancel(ctx, id)
	})
	return err
}

func (s *timeoutService) ListScheduled(ctx context.Context) ([]Notification, error) {
	return bounded(ctx, s.timeout, s.next.ListScheduled)
}

type callResult[T any] struct {
	val T
	err error
}

func bounded[T any](ctx context.Context, d time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan callResult[T], 1)
	go func() {
		val, err := call(ctx)
		done <- callResult[T]{val: val, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

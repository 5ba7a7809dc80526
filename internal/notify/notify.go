// Package notify models the host's local notification capability.
package notify

import (
	"context"
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is one scheduled local notification. Data is the opaque
// payload; features tag their own notifications through it.
type Notification struct {
	ID     string
	FireAt time.Time
	Title  string
	Body   string
	Data   map[string]string
}

//go:generate mockgen -source=$GOFILE -destination=../service/notify_mocks_test.go -package=service_test

// Service schedules, cancels and lists local notifications. Scheduling an
// ID that already exists replaces it. Implementations should return once ctx
// is done; WithTimeout bounds callers against those that don't.
type Service interface {
	ScheduleAt(ctx context.Context, n Notification) error
	Cancel(ctx context.Context, id string) error
	ListScheduled(ctx context.Context) ([]Notification, error)
}

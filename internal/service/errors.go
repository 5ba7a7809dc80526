package service

import "errors"

var (
	// ErrCatalogUnavailable means the workout list could not be read. The
	// scheduler treats it as an empty catalog.
	ErrCatalogUnavailable = errors.New("workout catalog unavailable")
	// ErrHistoryUnavailable means the completion log could not be read.
	// Interval workouts are then skipped; weekly ones still schedule.
	ErrHistoryUnavailable = errors.New("completion history unavailable")
	// ErrNotificationCallFailed marks one failed schedule, cancel or list call.
	ErrNotificationCallFailed = errors.New("notification call failed")
	// ErrStorageWriteFailed means a computed streak state was not persisted.
	ErrStorageWriteFailed = errors.New("streak state not persisted")
	// ErrAmbiguousWorkout means a name or ID prefix matched more than one
	// workout.
	ErrAmbiguousWorkout = errors.New("workout reference is ambiguous")
)

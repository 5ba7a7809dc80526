package domain

import "time"

// CompletedSession is one entry of the completion log. Only the calendar
// day of CompletedAt matters to reminders and streaks.
type CompletedSession struct {
	ID          string
	WorkoutID   string
	CompletedAt time.Time
	CreatedAt   time.Time
}

// LastCompletion returns the latest completion time logged for workoutID.
func LastCompletion(sessions []*CompletedSession, workoutID string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, s := range sessions {
		if s == nil || s.WorkoutID != workoutID {
			continue
		}
		if !found || s.CompletedAt.After(latest) {
			latest = s.CompletedAt
			found = true
		}
	}
	return latest, found
}

package domain

import "time"

// ReminderTrigger is one future reminder instant computed for one workout.
type ReminderTrigger struct {
	WorkoutID string
	At        time.Time
}

// DayKey is the calendar day the trigger fires on.
func (t ReminderTrigger) DayKey() string {
	return DayKey(t.At)
}

// ReminderEntry is one workout contributing to a day's reminder.
type ReminderEntry struct {
	WorkoutID   string
	WorkoutName string
	Kind        FrequencyKind
}

// DailyReminderAggregate merges every workout due on one calendar day into
// a single reminder. It is recomputed on every pass and never persisted.
type DailyReminderAggregate struct {
	Day      string
	At       time.Time
	Workouts []ReminderEntry
}

// WorkoutNames returns contributing names in processing order.
func (a DailyReminderAggregate) WorkoutNames() []string {
	names := make([]string, 0, len(a.Workouts))
	for _, w := range a.Workouts {
		names = append(names, w.WorkoutName)
	}
	return names
}

// WorkoutIDs returns contributing workout IDs in processing order.
func (a DailyReminderAggregate) WorkoutIDs() []string {
	ids := make([]string, 0, len(a.Workouts))
	for _, w := range a.Workouts {
		ids = append(ids, w.WorkoutID)
	}
	return ids
}

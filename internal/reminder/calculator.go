package reminder

import (
	"fmt"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
)

const (
	DefaultHour        = 9
	DefaultMinute      = 0
	DefaultHorizonDays = 30
)

// Settings are the calculator's fixed constants. Every reminder fires at
// Hour:Minute local time and nothing is scheduled beyond HorizonDays.
type Settings struct {
	Hour        int
	Minute      int
	HorizonDays int
	Location    *time.Location
}

func DefaultSettings() Settings {
	return Settings{
		Hour:        DefaultHour,
		Minute:      DefaultMinute,
		HorizonDays: DefaultHorizonDays,
		Location:    time.Local,
	}
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// Horizon returns the last instant at which a reminder may be scheduled.
func (s Settings) Horizon(now time.Time) time.Time {
	return now.In(s.location()).AddDate(0, 0, s.HorizonDays)
}

// ComputeTriggers returns the future reminder instants for one workout,
// ordered and at most one per calendar day. Flexible workouts never get
// reminders; interval workouts only get one after their first completion.
func ComputeTriggers(w *domain.Workout, sessions []*domain.CompletedSession, now time.Time, s Settings) []domain.ReminderTrigger {
	now = now.In(s.location())

	switch w.Frequency.Kind {
	case domain.FrequencyNone:
		return nil
	case domain.FrequencyWeekly:
		return weeklyTriggers(w, now, s)
	case domain.FrequencyInterval:
		return intervalTriggers(w, sessions, now, s)
	default:
		panic(fmt.Sprintf("unhandled frequency kind %q", w.Frequency.Kind))
	}
}

func weeklyTriggers(w *domain.Workout, now time.Time, s Settings) []domain.ReminderTrigger {
	today := domain.StartOfDay(now)
	offset := (int(w.Frequency.DayOfWeek) - int(today.Weekday()) + 7) % 7

	// A reminder at exactly now counts as already passed.
	if first := domain.AtTimeOfDay(today.AddDate(0, 0, offset), s.Hour, s.Minute); !first.After(now) {
		offset += 7
	}

	horizon := s.Horizon(now)
	var triggers []domain.ReminderTrigger
	for d := offset; ; d += 7 {
		at := domain.AtTimeOfDay(today.AddDate(0, 0, d), s.Hour, s.Minute)
		if at.After(horizon) {
			break
		}
		triggers = append(triggers, domain.ReminderTrigger{WorkoutID: w.ID, At: at})
	}
	return triggers
}

func intervalTriggers(w *domain.Workout, sessions []*domain.CompletedSession, now time.Time, s Settings) []domain.ReminderTrigger {
	last, ok := domain.LastCompletion(sessions, w.ID)
	if !ok {
		return nil
	}

	lastDay := domain.StartOfDay(last.In(s.location()))
	due := domain.AtTimeOfDay(lastDay.AddDate(0, 0, w.Frequency.IntervalDays), s.Hour, s.Minute)
	if !due.After(now) || due.After(s.Horizon(now)) {
		return nil
	}
	return []domain.ReminderTrigger{{WorkoutID: w.ID, At: due}}
}

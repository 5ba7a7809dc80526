package domain

import (
	"fmt"
	"time"
)

const (
	// DefaultGraceMultiplier scales the expected period into the grace window.
	DefaultGraceMultiplier = 2
	// DefaultFlexibleGraceDays is the grace window for workouts without a schedule.
	DefaultFlexibleGraceDays = 14

	daysPerWeek = 7
)

// WindowPolicy holds the constants of the streak validity window. Both the
// streak engine and the expiry sweep evaluate it the same way.
type WindowPolicy struct {
	GraceMultiplier   int
	FlexibleGraceDays int
}

func DefaultWindowPolicy() WindowPolicy {
	return WindowPolicy{
		GraceMultiplier:   DefaultGraceMultiplier,
		FlexibleGraceDays: DefaultFlexibleGraceDays,
	}
}

// GraceDays is the length of the window after a completion:
// none -> flexible days, weekly -> 7 * multiplier, interval(n) -> n * multiplier.
func (p WindowPolicy) GraceDays(f Frequency) int {
	switch f.Kind {
	case FrequencyNone:
		return p.FlexibleGraceDays
	case FrequencyWeekly:
		return daysPerWeek * p.GraceMultiplier
	case FrequencyInterval:
		return f.IntervalDays * p.GraceMultiplier
	default:
		panic(fmt.Sprintf("unhandled frequency kind %q", f.Kind))
	}
}

// GraceDeadline returns the last calendar day (midnight) on which a
// completion still continues the run started at lastCompletion.
func (p WindowPolicy) GraceDeadline(f Frequency, lastCompletion time.Time) time.Time {
	return StartOfDay(lastCompletion).AddDate(0, 0, p.GraceDays(f))
}

// WithinWindow reports whether d falls on or before the grace deadline.
// The comparison is by calendar day, so any time on the deadline day counts.
func (p WindowPolicy) WithinWindow(f Frequency, lastCompletion, d time.Time) bool {
	return DaysBetween(lastCompletion, d) <= p.GraceDays(f)
}

// DaysRemaining returns whole days from now until the grace deadline, floored at 0.
func (p WindowPolicy) DaysRemaining(f Frequency, lastCompletion, now time.Time) int {
	left := p.GraceDays(f) - DaysBetween(lastCompletion, now)
	if left < 0 {
		return 0
	}
	return left
}

package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFrequency is returned when a frequency fails validation or parsing.
var ErrInvalidFrequency = errors.New("invalid frequency")

// Frequency is the recurrence rule attached to a workout. It is a closed
// union keyed by Kind: DayOfWeek is only meaningful for FrequencyWeekly and
// IntervalDays only for FrequencyInterval. Build values with NoFrequency,
// WeeklyOn or EveryNDays.
type Frequency struct {
	Kind         FrequencyKind
	DayOfWeek    time.Weekday
	IntervalDays int
}

func NoFrequency() Frequency {
	return Frequency{Kind: FrequencyNone}
}

func WeeklyOn(day time.Weekday) Frequency {
	return Frequency{Kind: FrequencyWeekly, DayOfWeek: day}
}

func EveryNDays(n int) Frequency {
	return Frequency{Kind: FrequencyInterval, IntervalDays: n}
}

func (f Frequency) Validate() error {
	switch f.Kind {
	case FrequencyNone:
		return nil
	case FrequencyWeekly:
		if f.DayOfWeek < time.Sunday || f.DayOfWeek > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidFrequency, f.DayOfWeek)
		}
		return nil
	case FrequencyInterval:
		if f.IntervalDays < 1 {
			return fmt.Errorf("%w: interval must be at least 1 day, got %d", ErrInvalidFrequency, f.IntervalDays)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidFrequency, f.Kind)
	}
}

// Schedulable reports whether workouts with this frequency receive reminders.
func (f Frequency) Schedulable() bool {
	return f.Kind == FrequencyWeekly || f.Kind == FrequencyInterval
}

// String renders the frequency in the same form ParseFrequency accepts.
func (f Frequency) String() string {
	switch f.Kind {
	case FrequencyWeekly:
		return "weekly:" + strings.ToLower(f.DayOfWeek.String()[:3])
	case FrequencyInterval:
		return "every:" + strconv.Itoa(f.IntervalDays)
	default:
		return string(FrequencyNone)
	}
}

// Describe returns a human label such as "Every Wednesday" or "Every 3 days".
func (f Frequency) Describe() string {
	switch f.Kind {
	case FrequencyWeekly:
		return "Every " + f.DayOfWeek.String()
	case FrequencyInterval:
		if f.IntervalDays == 1 {
			return "Every day"
		}
		return fmt.Sprintf("Every %d days", f.IntervalDays)
	default:
		return "Flexible"
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday accepts a weekday name ("wed", "Wednesday") or number 0..6 (Sunday = 0).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidFrequency, s)
	}
	return time.Weekday(n), nil
}

// ParseFrequency parses "none", "weekly:<day>" or "every:<n>" (also "interval:<n>").
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(FrequencyNone) || s == "flexible" {
		return NoFrequency(), nil
	}

	kind, arg, ok := strings.Cut(s, ":")
	if !ok {
		return Frequency{}, fmt.Errorf("%w: %q (want none, weekly:<day> or every:<days>)", ErrInvalidFrequency, s)
	}

	var f Frequency
	switch kind {
	case "weekly":
		day, err := ParseWeekday(arg)
		if err != nil {
			return Frequency{}, err
		}
		f = WeeklyOn(day)
	case "every", "interval":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return Frequency{}, fmt.Errorf("%w: interval %q is not a number", ErrInvalidFrequency, arg)
		}
		f = EveryNDays(n)
	default:
		return Frequency{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidFrequency, kind)
	}

	if err := f.Validate(); err != nil {
		return Frequency{}, err
	}
	return f, nil
}

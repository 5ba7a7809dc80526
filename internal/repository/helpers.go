package repository

import (
	"database/sql"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
)

// frequencyColumns maps a Frequency onto (kind, weekly_day, interval_days).
// Columns that do not apply to the kind are stored as NULL.
func frequencyColumns(f domain.Frequency) (string, any, any) {
	switch f.Kind {
	case domain.FrequencyWeekly:
		return string(f.Kind), int(f.DayOfWeek), nil
	case domain.FrequencyInterval:
		return string(f.Kind), nil, f.IntervalDays
	default:
		return string(domain.FrequencyNone), nil, nil
	}
}

func frequencyFromColumns(kind string, weeklyDay, intervalDays sql.NullInt64) domain.Frequency {
	switch domain.FrequencyKind(kind) {
	case domain.FrequencyWeekly:
		return domain.WeeklyOn(time.Weekday(weeklyDay.Int64))
	case domain.FrequencyInterval:
		return domain.EveryNDays(int(intervalDays.Int64))
	default:
		return domain.NoFrequency()
	}
}

func boolToBytes(b bool) []byte {
	if b {
		return []byte("true")
	}
	return []byte("false")
}

// formatTime stores instants in UTC so text ordering matches time ordering.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

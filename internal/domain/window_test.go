package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGraceDays(t *testing.T) {
	p := DefaultWindowPolicy()
	cases := []struct {
		freq Frequency
		want int
	}{
		{NoFrequency(), 14},
		{WeeklyOn(time.Wednesday), 14},
		{EveryNDays(1), 2},
		{EveryNDays(3), 6},
		{EveryNDays(10), 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.GraceDays(tc.freq), "freq=%s", tc.freq)
	}
}

func TestGraceDeadline_AnchorsToStartOfDay(t *testing.T) {
	p := DefaultWindowPolicy()
	last := time.Date(2024, 1, 1, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, day(2024, 1, 15), p.GraceDeadline(WeeklyOn(time.Monday), last))
	assert.Equal(t, day(2024, 1, 5), p.GraceDeadline(EveryNDays(2), last))
}

func TestWithinWindow_DeadlineDayIsInclusive(t *testing.T) {
	p := DefaultWindowPolicy()
	last := day(2024, 3, 1)
	weekly := WeeklyOn(time.Friday)

	assert.True(t, p.WithinWindow(weekly, last, day(2024, 3, 1)), "same day")
	assert.True(t, p.WithinWindow(weekly, last, day(2024, 3, 15)), "last + 14")
	assert.True(t, p.WithinWindow(weekly, last, time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)), "late on deadline day")
	assert.False(t, p.WithinWindow(weekly, last, day(2024, 3, 16)), "last + 15")
}

func TestWithinWindow_IgnoresDSTShift(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	p := DefaultWindowPolicy()
	// DST starts 2024-03-31 in Europe; the window spans it.
	last := time.Date(2024, 3, 25, 0, 30, 0, 0, loc)
	assert.True(t, p.WithinWindow(EveryNDays(3), last, time.Date(2024, 3, 31, 23, 30, 0, 0, loc)))
	assert.False(t, p.WithinWindow(EveryNDays(3), last, time.Date(2024, 4, 1, 0, 10, 0, 0, loc)))
}

func TestDaysRemaining(t *testing.T) {
	p := DefaultWindowPolicy()
	last := day(2024, 1, 1)
	f := EveryNDays(2) // deadline 2024-01-05

	assert.Equal(t, 4, p.DaysRemaining(f, last, time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, p.DaysRemaining(f, last, day(2024, 1, 4)))
	assert.Equal(t, 0, p.DaysRemaining(f, last, day(2024, 1, 5)))
	assert.Equal(t, 0, p.DaysRemaining(f, last, day(2024, 2, 1)), "past deadline floors at zero")
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysBetween(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, -3, DaysBetween(day(2024, 1, 4), day(2024, 1, 1)))
	assert.Equal(t, 366, DaysBetween(day(2024, 1, 1), day(2025, 1, 1)), "leap year")
}

func TestCustomPolicy(t *testing.T) {
	p := WindowPolicy{GraceMultiplier: 3, FlexibleGraceDays: 10}
	assert.Equal(t, 21, p.GraceDays(WeeklyOn(time.Sunday)))
	assert.Equal(t, 9, p.GraceDays(EveryNDays(3)))
	assert.Equal(t, 10, p.GraceDays(NoFrequency()))
}

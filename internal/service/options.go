package service

import (
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/reminder"
)

const (
	DefaultCallTimeout = 3 * time.Second
	DefaultConcurrency = 4
)

// Clock returns the current instant. Services default to time.Now.
type Clock func() time.Time

// ReminderOptions tunes the scheduling pass.
type ReminderOptions struct {
	Settings    reminder.Settings
	CallTimeout time.Duration
	Concurrency int
	Now         Clock
}

func DefaultReminderOptions() ReminderOptions {
	return ReminderOptions{
		Settings:    reminder.DefaultSettings(),
		CallTimeout: DefaultCallTimeout,
		Concurrency: DefaultConcurrency,
		Now:         time.Now,
	}
}

func (o ReminderOptions) withDefaults() ReminderOptions {
	if o.Settings.HorizonDays <= 0 {
		o.Settings.HorizonDays = reminder.DefaultHorizonDays
	}
	if o.Settings.Location == nil {
		o.Settings.Location = time.Local
	}
	if o.CallTimeout <= 0 {
		o.CallTimeout = DefaultCallTimeout
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// StreakOptions carries the window policy and the calendar the streak
// engine counts days in.
type StreakOptions struct {
	Policy   domain.WindowPolicy
	Location *time.Location
	Now      Clock
}

func DefaultStreakOptions() StreakOptions {
	return StreakOptions{
		Policy:   domain.DefaultWindowPolicy(),
		Location: time.Local,
		Now:      time.Now,
	}
}

func (o StreakOptions) withDefaults() StreakOptions {
	if o.Policy.GraceMultiplier <= 0 {
		o.Policy.GraceMultiplier = domain.DefaultGraceMultiplier
	}
	if o.Policy.FlexibleGraceDays <= 0 {
		o.Policy.FlexibleGraceDays = domain.DefaultFlexibleGraceDays
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (o StreakOptions) today() time.Time {
	return o.Now().In(o.Location)
}

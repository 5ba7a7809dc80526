package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/reminder"
)

// Config holds the tunable constants of the engine and the CLI host.
type Config struct {
	// reminders
	ReminderHour      int           `toml:"reminder_hour"`
	ReminderMinute    int           `toml:"reminder_minute"`
	HorizonDays       int           `toml:"horizon_days"`
	NotifyTimeoutMs   int           `toml:"notify_timeout_ms"`
	NotifyConcurrency int           `toml:"notify_concurrency"`
	MessageCacheTTL   time.Duration `toml:"message_cache_ttl"`
	// streaks
	GraceMultiplier   int `toml:"grace_multiplier"`
	FlexibleGraceDays int `toml:"flexible_grace_days"`
	// host
	DBPath   string `toml:"db_path"`
	Timezone string `toml:"timezone"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ReminderHour:      reminder.DefaultHour,
		ReminderMinute:    reminder.DefaultMinute,
		HorizonDays:       reminder.DefaultHorizonDays,
		NotifyTimeoutMs:   3000,
		NotifyConcurrency: 4,
		MessageCacheTTL:   24 * time.Hour,
		GraceMultiplier:   domain.DefaultGraceMultiplier,
		FlexibleGraceDays: domain.DefaultFlexibleGraceDays,
		DBPath:            defaultDBPath(),
		Timezone:          "Local",
		LogLevel:          "info",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".peak", "peak.db")
	}
	return filepath.Join(home, ".peak", "peak.db")
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() string {
	return filepath.Join(filepath.Dir(defaultDBPath()), "config.toml")
}

// Load builds the configuration from defaults, then the TOML file at path,
// then PEAK_* environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	applyIntEnv(&cfg.ReminderHour, "PEAK_REMINDER_HOUR")
	applyIntEnv(&cfg.ReminderMinute, "PEAK_REMINDER_MINUTE")
	applyIntEnv(&cfg.HorizonDays, "PEAK_HORIZON_DAYS")
	applyIntEnv(&cfg.NotifyTimeoutMs, "PEAK_NOTIFY_TIMEOUT_MS")
	applyIntEnv(&cfg.NotifyConcurrency, "PEAK_NOTIFY_CONCURRENCY")
	applyIntEnv(&cfg.GraceMultiplier, "PEAK_GRACE_MULTIPLIER")
	applyIntEnv(&cfg.FlexibleGraceDays, "PEAK_FLEXIBLE_GRACE_DAYS")

	if v := os.Getenv("PEAK_MESSAGE_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.MessageCacheTTL = d
		}
	}
	if v := os.Getenv("PEAK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PEAK_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("PEAK_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("PEAK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// applyIntEnv overrides dst when envName holds a valid integer.
func applyIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.ReminderHour < 0 || c.ReminderHour > 23:
		return fmt.Errorf("reminder_hour must be in 0..23, got %d", c.ReminderHour)
	case c.ReminderMinute < 0 || c.ReminderMinute > 59:
		return fmt.Errorf("reminder_minute must be in 0..59, got %d", c.ReminderMinute)
	case c.HorizonDays < 1:
		return fmt.Errorf("horizon_days must be at least 1, got %d", c.HorizonDays)
	case c.NotifyTimeoutMs < 1:
		return fmt.Errorf("notify_timeout_ms must be positive, got %d", c.NotifyTimeoutMs)
	case c.NotifyConcurrency < 1:
		return fmt.Errorf("notify_concurrency must be at least 1, got %d", c.NotifyConcurrency)
	case c.MessageCacheTTL <= 0:
		return fmt.Errorf("message_cache_ttl must be positive, got %s", c.MessageCacheTTL)
	case c.GraceMultiplier < 1:
		return fmt.Errorf("grace_multiplier must be at least 1, got %d", c.GraceMultiplier)
	case c.FlexibleGraceDays < 1:
		return fmt.Errorf("flexible_grace_days must be at least 1, got %d", c.FlexibleGraceDays)
	case c.DBPath == "":
		return errors.New("db_path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone. "Local" and "" mean the
// process's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) ReminderSettings(loc *time.Location) reminder.Settings {
	return reminder.Settings{
		Hour:        c.ReminderHour,
		Minute:      c.ReminderMinute,
		HorizonDays: c.HorizonDays,
		Location:    loc,
	}
}

func (c Config) WindowPolicy() domain.WindowPolicy {
	return domain.WindowPolicy{
		GraceMultiplier:   c.GraceMultiplier,
		FlexibleGraceDays: c.FlexibleGraceDays,
	}
}

func (c Config) NotifyTimeout() time.Duration {
	return time.Duration(c.NotifyTimeoutMs) * time.Millisecond
}

package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workouts (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		frequency_kind TEXT NOT NULL DEFAULT 'none'
		               CHECK(frequency_kind IN ('none','weekly','interval')),
		weekly_day     INTEGER CHECK(weekly_day BETWEEN 0 AND 6),
		interval_days  INTEGER CHECK(interval_days >= 1),
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS completed_sessions (
		id           TEXT PRIMARY KEY,
		workout_id   TEXT NOT NULL,
		completed_at TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_workout ON completed_sessions(workout_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_completed ON completed_sessions(completed_at)`,

	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS scheduled_notifications (
		id         TEXT PRIMARY KEY,
		fire_at    TEXT NOT NULL,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		data       TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_fire_at ON scheduled_notifications(fire_at)`,
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joinpeakapp/peak/internal/db"
)

// SQLiteStore keeps scheduled notifications in the local database. It
// stands in for the platform notification center when running as a CLI.
type SQLiteStore struct {
	db db.DBTX
}

func NewSQLiteStore(conn db.DBTX) *SQLiteStore {
	return &SQLiteStore{db: conn}
}

func (s *SQLiteStore) ScheduleAt(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("encoding notification data: %w", err)
	}
	query := `INSERT INTO scheduled_notifications (id, fire_at, title, body, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			fire_at = excluded.fire_at,
			title = excluded.title,
			body = excluded.body,
			data = excluded.data`
	_, err = s.db.ExecContext(ctx, query,
		n.ID,
		n.FireAt.Format(time.RFC3339),
		n.Title,
		n.Body,
		string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("scheduling notification %s: %w", n.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Cancel(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scheduled_notifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("cancelling notification %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancelling notification %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotificationNotFound)
	}
	return nil
}

func (s *SQLiteStore) ListScheduled(ctx context.Context) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, fire_at, title, body, data
		FROM scheduled_notifications ORDER BY fire_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var (
			n      Notification
			fireAt string
			data   string
		)
		if err := rows.Scan(&n.ID, &fireAt, &n.Title, &n.Body, &data); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		if n.FireAt, err = time.Parse(time.RFC3339, fireAt); err != nil {
			return nil, fmt.Errorf("parsing fire_at of %s: %w", n.ID, err)
		}
		if err := json.Unmarshal([]byte(data), &n.Data); err != nil {
			return nil, fmt.Errorf("decoding data of %s: %w", n.ID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

var _ Service = (*SQLiteStore)(nil)

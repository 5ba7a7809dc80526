package domain

import (
	"errors"
	"strings"
	"time"
)

type Workout struct {
	ID        string
	Name      string
	Frequency Frequency
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the invariants the catalog enforces on every write.
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return errors.New("workout name is required")
	}
	return w.Frequency.Validate()
}

package repository

import (
	"context"
	"fmt"
	"strconv"
)

const RemindersEnabledKey = "settings:reminders_enabled"

// KVSettingsStore keeps runtime toggles in the key-value store.
type KVSettingsStore struct {
	kv KVStore
}

func NewKVSettingsStore(kv KVStore) *KVSettingsStore {
	return &KVSettingsStore{kv: kv}
}

// RemindersEnabled defaults to true until the user turns reminders off.
func (s *KVSettingsStore) RemindersEnabled(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, RemindersEnabledKey)
	if err != nil {
		return false, fmt.Errorf("reading reminders toggle: %w", err)
	}
	if !ok {
		return true, nil
	}
	enabled, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, fmt.Errorf("parsing reminders toggle %q: %w", raw, err)
	}
	return enabled, nil
}

func (s *KVSettingsStore) SetRemindersEnabled(ctx context.Context, enabled bool) error {
	if err := s.kv.Set(ctx, RemindersEnabledKey, boolToBytes(enabled)); err != nil {
		return fmt.Errorf("writing reminders toggle: %w", err)
	}
	return nil
}

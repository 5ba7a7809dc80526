package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
)

// StreakKeyPrefix namespaces streak records in the key-value store.
const StreakKeyPrefix = "streak:"

func StreakKey(workoutID string) string {
	return StreakKeyPrefix + workoutID
}

// streakRecord is the stored layout. Dates are calendar days, so they are
// kept as YYYY-MM-DD and re-anchored in the store's location on load.
type streakRecord struct {
	WorkoutID         string          `json:"workout_id"`
	Current           int             `json:"current"`
	Longest           int             `json:"longest"`
	LastCompletedDate *string         `json:"last_completed_date"`
	History           []segmentRecord `json:"history"`
}

type segmentRecord struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Count     int    `json:"count"`
}

// KVStreakStore implements StreakRepo on top of a KVStore.
type KVStreakStore struct {
	kv  KVStore
	loc *time.Location
}

func NewKVStreakStore(kv KVStore, loc *time.Location) *KVStreakStore {
	if loc == nil {
		loc = time.Local
	}
	return &KVStreakStore{kv: kv, loc: loc}
}

func (s *KVStreakStore) Find(ctx context.Context, workoutID string) (*domain.StreakState, bool, error) {
	raw, ok, err := s.kv.Get(ctx, StreakKey(workoutID))
	if err != nil {
		return nil, false, fmt.Errorf("loading streak of %s: %w", workoutID, err)
	}
	if !ok {
		return nil, false, nil
	}
	state, err := s.decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decoding streak of %s: %w", workoutID, err)
	}
	if state.WorkoutID == "" {
		state.WorkoutID = workoutID
	}
	return state, true, nil
}

func (s *KVStreakStore) Get(ctx context.Context, workoutID string) (*domain.StreakState, error) {
	state, ok, err := s.Find(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.NewStreakState(workoutID), nil
	}
	return state, nil
}

func (s *KVStreakStore) Save(ctx context.Context, state *domain.StreakState) error {
	raw, err := json.Marshal(encodeStreak(state))
	if err != nil {
		return fmt.Errorf("encoding streak of %s: %w", state.WorkoutID, err)
	}
	if err := s.kv.Set(ctx, StreakKey(state.WorkoutID), raw); err != nil {
		return fmt.Errorf("saving streak of %s: %w", state.WorkoutID, err)
	}
	return nil
}

func (s *KVStreakStore) ListAll(ctx context.Context) ([]*domain.StreakState, error) {
	keys, err := s.kv.ListKeys(ctx, StreakKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing streaks: %w", err)
	}
	states := make([]*domain.StreakState, 0, len(keys))
	for _, key := range keys {
		state, ok, err := s.Find(ctx, strings.TrimPrefix(key, StreakKeyPrefix))
		if err != nil {
			return nil, err
		}
		if ok {
			states = append(states, state)
		}
	}
	return states, nil
}

func (s *KVStreakStore) DeleteAll(ctx context.Context) (int, error) {
	n, err := s.kv.DeletePrefix(ctx, StreakKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("deleting streaks: %w", err)
	}
	return n, nil
}

func encodeStreak(state *domain.StreakState) streakRecord {
	rec := streakRecord{
		WorkoutID: state.WorkoutID,
		Current:   state.Current,
		Longest:   state.Longest,
		History:   make([]segmentRecord, 0, len(state.History)),
	}
	if state.LastCompletedDate != nil {
		d := domain.DayKey(*state.LastCompletedDate)
		rec.LastCompletedDate = &d
	}
	for _, seg := range state.History {
		rec.History = append(rec.History, segmentRecord{
			StartDate: domain.DayKey(seg.StartDate),
			EndDate:   domain.DayKey(seg.EndDate),
			Count:     seg.Count,
		})
	}
	return rec
}

func (s *KVStreakStore) decode(raw []byte) (*domain.StreakState, error) {
	var rec streakRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	state := &domain.StreakState{
		WorkoutID: rec.WorkoutID,
		Current:   rec.Current,
		Longest:   rec.Longest,
		History:   make([]domain.StreakSegment, 0, len(rec.History)),
	}
	if rec.LastCompletedDate != nil {
		d, err := domain.ParseDay(*rec.LastCompletedDate, s.loc)
		if err != nil {
			return nil, err
		}
		state.LastCompletedDate = &d
	}
	for _, seg := range rec.History {
		start, err := domain.ParseDay(seg.StartDate, s.loc)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseDay(seg.EndDate, s.loc)
		if err != nil {
			return nil, err
		}
		state.History = append(state.History, domain.StreakSegment{StartDate: start, EndDate: end, Count: seg.Count})
	}
	return state, nil
}

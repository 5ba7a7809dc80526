package domain

import "time"

// StreakSegment is one historical run of consecutive completions.
type StreakSegment struct {
	StartDate time.Time
	EndDate   time.Time
	Count     int
}

// StreakState is the persisted streak record of a single workout.
//
// Invariants: Longest never decreases and Longest >= Current; while
// Current > 0 the last History segment's Count equals Current.
type StreakState struct {
	WorkoutID         string
	Current           int
	Longest           int
	LastCompletedDate *time.Time
	History           []StreakSegment
}

// NewStreakState returns the empty state used when nothing is stored yet.
func NewStreakState(workoutID string) *StreakState {
	return &StreakState{
		WorkoutID: workoutID,
		History:   []StreakSegment{},
	}
}

// IsActive reports whether a run is currently alive.
func (s *StreakState) IsActive() bool {
	return s.Current > 0 && s.LastCompletedDate != nil
}

// RecordCompletion applies one completion on the given day. An active run
// continues when the day is within the window measured from the previous
// completion; otherwise a new run (and a new history segment) starts.
// A state whose run was cleared by ExpireIfLapsed also starts a new run.
// A day before LastCompletedDate changes nothing and reports StreakBackdated,
// so LastCompletedDate and the newest segment only move forward.
func (s *StreakState) RecordCompletion(f Frequency, on time.Time, policy WindowPolicy) StreakOutcome {
	day := StartOfDay(on)
	if s.LastCompletedDate != nil && DaysBetween(*s.LastCompletedDate, day) < 0 {
		return StreakBackdated
	}

	var outcome StreakOutcome
	switch {
	case s.LastCompletedDate == nil:
		outcome = StreakStarted
		s.startRun(day)
	case s.Current > 0 && policy.WithinWindow(f, *s.LastCompletedDate, day):
		outcome = StreakContinued
		s.Current++
		s.extendRun(day)
	default:
		outcome = StreakReset
		s.startRun(day)
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastCompletedDate = &day
	return outcome
}

// ExpireIfLapsed clears the live run when now is past the grace deadline.
// History and Longest are left untouched. Returns true if it changed the state.
func (s *StreakState) ExpireIfLapsed(f Frequency, now time.Time, policy WindowPolicy) bool {
	if !s.IsActive() {
		return false
	}
	if policy.WithinWindow(f, *s.LastCompletedDate, now) {
		return false
	}
	s.Current = 0
	return true
}

// DaysUntilLoss returns how many whole days remain before the run is lost.
func (s *StreakState) DaysUntilLoss(f Frequency, now time.Time, policy WindowPolicy) int {
	if s.LastCompletedDate == nil {
		return 0
	}
	return policy.DaysRemaining(f, *s.LastCompletedDate, now)
}

func (s *StreakState) startRun(day time.Time) {
	s.Current = 1
	s.History = append(s.History, StreakSegment{StartDate: day, EndDate: day, Count: 1})
}

func (s *StreakState) extendRun(day time.Time) {
	if len(s.History) == 0 {
		s.History = append(s.History, StreakSegment{StartDate: day, Count: s.Current})
	}
	last := &s.History[len(s.History)-1]
	last.EndDate = day
	last.Count = s.Current
}

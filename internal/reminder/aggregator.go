package reminder

import (
	"sort"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
)

// WorkoutTriggers pairs a workout with the triggers computed for it.
type WorkoutTriggers struct {
	Workout  *domain.Workout
	Triggers []domain.ReminderTrigger
}

// Aggregate merges per-workout triggers into one aggregate per calendar day.
// Within a day, workouts keep the order in which they were passed in; days
// are returned in chronological order. Days with no workout never appear.
func Aggregate(items []WorkoutTriggers) []domain.DailyReminderAggregate {
	byDay := make(map[string]*domain.DailyReminderAggregate)
	for _, item := range items {
		for _, trig := range item.Triggers {
			key := trig.DayKey()
			agg, ok := byDay[key]
			if !ok {
				agg = &domain.DailyReminderAggregate{Day: key, At: trig.At}
				byDay[key] = agg
			}
			agg.Workouts = append(agg.Workouts, domain.ReminderEntry{
				WorkoutID:   item.Workout.ID,
				WorkoutName: item.Workout.Name,
				Kind:        item.Workout.Frequency.Kind,
			})
		}
	}

	result := make([]domain.DailyReminderAggregate, 0, len(byDay))
	for _, agg := range byDay {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day < result[j].Day
	})
	return result
}

// BuildAggregates runs the calculator for every schedulable workout, in
// catalog order, and aggregates the result.
func BuildAggregates(workouts []*domain.Workout, sessions []*domain.CompletedSession, now time.Time, s Settings) []domain.DailyReminderAggregate {
	items := make([]WorkoutTriggers, 0, len(workouts))
	for _, w := range workouts {
		if w == nil || !w.Frequency.Schedulable() {
			continue
		}
		triggers := ComputeTriggers(w, sessions, now, s)
		if len(triggers) == 0 {
			continue
		}
		items = append(items, WorkoutTriggers{Workout: w, Triggers: triggers})
	}
	return Aggregate(items)
}

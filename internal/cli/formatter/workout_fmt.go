package formatter

import (
	"strings"

	"github.com/joinpeakapp/peak/internal/domain"
)

func FormatWorkoutList(workouts []*domain.Workout) string {
	headers := []string{"ID", "NAME", "FREQUENCY", "REMINDERS"}
	rows := make([][]string, 0, len(workouts))
	for _, w := range workouts {
		reminders := Dim("never")
		if w.Frequency.Schedulable() {
			reminders = StyleGreen.Render("scheduled")
		}
		rows = append(rows, []string{
			TruncID(w.ID),
			Bold(w.Name),
			FrequencyBadge(w.Frequency),
			reminders,
		})
	}
	return Header("Workouts") + "\n" + RenderTable(headers, rows)
}

// FormatWorkoutLine is the one-line confirmation printed after a change.
func FormatWorkoutLine(verb string, w *domain.Workout) string {
	var b strings.Builder
	b.WriteString(verb)
	b.WriteString(" ")
	b.WriteString(Bold(w.Name))
	b.WriteString(" (")
	b.WriteString(w.Frequency.Describe())
	b.WriteString(") ")
	b.WriteString(TruncID(w.ID))
	return b.String()
}

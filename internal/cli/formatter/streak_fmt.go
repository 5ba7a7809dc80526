package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/service"
)

const windowBarWidth = 10

func FormatStreakOverview(items []service.StreakOverview, policy domain.WindowPolicy) string {
	headers := []string{"WORKOUT", "STREAK", "BEST", "LAST", "WINDOW"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		grace := policy.GraceDays(it.Workout.Frequency)
		window := Dim("--")
		if it.State.IsActive() {
			window = RenderWindow(it.DaysUntilLoss, grace, windowBarWidth)
		}
		rows = append(rows, []string{
			Bold(it.Workout.Name),
			StreakIndicator(it.State, it.DaysUntilLoss, grace),
			fmt.Sprintf("%d", it.State.Longest),
			OptionalDay(it.State.LastCompletedDate),
			window,
		})
	}
	return Header("Streaks") + "\n" + RenderTable(headers, rows)
}

// FormatStreakDetail renders one workout's streak with its segment history,
// newest segment first.
func FormatStreakDetail(w *domain.Workout, s *domain.StreakState, daysLeft int, policy domain.WindowPolicy) string {
	grace := policy.GraceDays(w.Frequency)

	var b strings.Builder
	fmt.Fprintf(&b, "Current    %s\n", StreakIndicator(s, daysLeft, grace))
	fmt.Fprintf(&b, "Longest    %d\n", s.Longest)
	fmt.Fprintf(&b, "Last       %s\n", OptionalDay(s.LastCompletedDate))
	fmt.Fprintf(&b, "Frequency  %s\n", FrequencyBadge(w.Frequency))
	if s.IsActive() {
		fmt.Fprintf(&b, "Window     %s\n", RenderWindow(daysLeft, grace, windowBarWidth))
	}

	if len(s.History) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(s.History))
		for i := len(s.History) - 1; i >= 0; i-- {
			seg := s.History[i]
			rows = append(rows, []string{
				domain.DayKey(seg.StartDate),
				domain.DayKey(seg.EndDate),
				fmt.Sprintf("%d", seg.Count),
			})
		}
		b.WriteString(RenderTable([]string{"FROM", "TO", "COUNT"}, rows))
	}

	return RenderBox(w.Name, strings.TrimRight(b.String(), "\n"))
}

func FormatCompletion(r *service.CompletionResult, daysLeft int, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Completed %s %s\n", Bold(r.Workout.Name), Dim(RelativeDay(r.Session.CompletedAt, today)))
	fmt.Fprintf(&b, "%s  streak %d, best %d", OutcomeBadge(r.Outcome), r.State.Current, r.State.Longest)
	if r.State.IsActive() {
		fmt.Fprintf(&b, ", %s to keep it", Plural(daysLeft, "day"))
	}
	if r.Schedule != nil {
		b.WriteString("\n")
		b.WriteString(FormatScheduleReport(r.Schedule))
	}
	return b.String()
}

func FormatSweep(r *service.SweepReport) string {
	if len(r.Expired) == 0 {
		return fmt.Sprintf("Checked %s, none expired", Plural(r.Checked, "streak"))
	}
	return fmt.Sprintf("Checked %s, %s expired", Plural(r.Checked, "streak"), StyleYellow.Render(fmt.Sprintf("%d", len(r.Expired))))
}

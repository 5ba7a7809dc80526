package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/notify"
	"github.com/joinpeakapp/peak/internal/service"
)

func FormatScheduleReport(r *service.ScheduleReport) string {
	if !r.Enabled {
		return fmt.Sprintf("Reminders %s, cancelled %d", StyleYellow.Render("disabled"), r.Cancelled)
	}
	line := fmt.Sprintf("Reminders: %s scheduled, %d cancelled", StyleGreen.Render(fmt.Sprintf("%d", r.Scheduled)), r.Cancelled)
	if r.Failed > 0 {
		line += ", " + StyleRed.Render(fmt.Sprintf("%d failed", r.Failed))
	}
	return line
}

// FormatAggregates renders the reminders a pass would create.
func FormatAggregates(aggs []domain.DailyReminderAggregate, today time.Time) string {
	if len(aggs) == 0 {
		return Dim("No reminders due in the horizon.")
	}
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []string{
			HumanDay(a.At),
			a.At.Format("15:04"),
			Dim(RelativeDay(a.At, today)),
			strings.Join(a.WorkoutNames(), ", "),
		})
	}
	return Header("Upcoming reminders") + "\n" + RenderTable([]string{"DAY", "AT", "WHEN", "WORKOUTS"}, rows)
}

// FormatNotifications renders scheduled notifications in loc.
func FormatNotifications(ns []notify.Notification, loc *time.Location) string {
	if len(ns) == 0 {
		return Dim("No reminders scheduled.")
	}
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		rows = append(rows, []string{
			Dim(n.ID),
			n.FireAt.In(loc).Format("Mon Jan 2 15:04"),
			Bold(n.Title),
			n.Body,
		})
	}
	return Header("Scheduled reminders") + "\n" + RenderTable([]string{"ID", "FIRES", "TITLE", "BODY"}, rows)
}

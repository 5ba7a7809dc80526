package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joinpeakapp/peak/internal/cli/formatter"
	"github.com/joinpeakapp/peak/internal/domain"
)

func newCompleteCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "complete WORKOUT",
		Short: "Log a completed workout and update its streak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.now()

			at, err := completionTime(date, now, app.location())
			if err != nil {
				return err
			}

			w, err := app.Workouts.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			result, err := app.Completion.CompleteWorkout(ctx, w.ID, at)
			if err != nil {
				return err
			}

			daysLeft := result.State.DaysUntilLoss(result.Workout.Frequency, now, app.Policy)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompletion(result, daysLeft, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Completion date (YYYY-MM-DD), defaults to now")

	return cmd
}

// completionTime resolves --date to an instant. A past date is taken at
// midnight; today or no date means now. Future dates are rejected.
func completionTime(date string, now time.Time, loc *time.Location) (time.Time, error) {
	if date == "" {
		return now, nil
	}
	day, err := domain.ParseDay(date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	switch n := domain.DaysBetween(now, day); {
	case n > 0:
		return time.Time{}, fmt.Errorf("invalid --date %s: completion cannot be in the future", date)
	case n == 0:
		return now, nil
	default:
		return day, nil
	}
}

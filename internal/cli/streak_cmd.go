package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joinpeakapp/peak/internal/cli/formatter"
)

func newStreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Inspect workout streaks",
	}

	cmd.AddCommand(
		newStreakShowCmd(app),
		newStreakSweepCmd(app),
	)

	return cmd
}

func newStreakShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [WORKOUT]",
		Short: "Show all streaks, or one workout's streak and history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 0 {
				overview, err := app.Streaks.Overview(ctx)
				if err != nil {
					return err
				}
				if len(overview) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No workouts yet.")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStreakOverview(overview, app.Policy))
				return nil
			}

			w, err := app.Workouts.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			state, err := app.Streaks.GetStreakState(ctx, w.ID)
			if err != nil {
				return err
			}
			daysLeft, err := app.Streaks.GetDaysUntilStreakLoss(ctx, w.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStreakDetail(w, state, daysLeft, app.Policy))
			return nil
		},
	}
}

func newStreakSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Clear streaks whose window has lapsed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			workouts, err := app.Workouts.List(ctx)
			if err != nil {
				return err
			}
			report, err := app.Streaks.SweepExpiredStreaks(ctx, workouts)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSweep(report))
			return err
		},
	}
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joinpeakapp/peak/internal/cli/formatter"
	"github.com/joinpeakapp/peak/internal/domain"
)

func newWorkoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Manage the workout catalog",
	}

	cmd.AddCommand(
		newWorkoutAddCmd(app),
		newWorkoutListCmd(app),
		newWorkoutEditCmd(app),
		newWorkoutRemoveCmd(app),
	)

	return cmd
}

func newWorkoutAddCmd(app *App) *cobra.Command {
	var name string
	var freq domain.Frequency

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a workout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if !app.interactive() {
					return errors.New("--name is required")
				}
				values := workoutFormValues{Kind: string(domain.FrequencyNone), Weekday: "monday"}
				if err := app.runForm(workoutForm(&values)); err != nil {
					return err
				}
				f, err := values.frequency()
				if err != nil {
					return err
				}
				name, freq = values.Name, f
			}

			w := &domain.Workout{Name: name, Frequency: freq}
			if err := app.Workouts.Create(cmd.Context(), w); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkoutLine("Added", w))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Workout name")
	addFrequencyFlag(cmd.Flags(), &freq)

	return cmd
}

func newWorkoutListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, err := app.Workouts.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(workouts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workouts yet. Add one with `peak workout add`.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkoutList(workouts))
			return nil
		},
	}
}

func newWorkoutEditCmd(app *App) *cobra.Command {
	var name string
	var freq domain.Frequency

	cmd := &cobra.Command{
		Use:   "edit WORKOUT",
		Short: "Rename a workout or change its frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := app.Workouts.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("frequency") {
				return errors.New("nothing to change: pass --name or --frequency")
			}
			if cmd.Flags().Changed("name") {
				w.Name = name
			}
			if cmd.Flags().Changed("frequency") {
				w.Frequency = freq
			}

			if err := app.Workouts.Update(ctx, w); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkoutLine("Updated", w))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New workout name")
	addFrequencyFlag(cmd.Flags(), &freq)

	return cmd
}

func newWorkoutRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove WORKOUT",
		Short: "Remove a workout (its streak record is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := app.Workouts.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Workouts.Delete(ctx, w.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkoutLine("Removed", w))
			return nil
		},
	}
}

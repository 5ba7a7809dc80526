package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all streaks and cancel all workout reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes every streak; pass --yes to confirm")
			}
			ctx := cmd.Context()

			var errs error
			deleted, err := app.Streaks.ResetAll(ctx)
			errs = multierr.Append(errs, err)

			report, err := app.Reminders.CancelAll(ctx)
			errs = multierr.Append(errs, err)

			cancelled := 0
			if report != nil {
				cancelled = report.Cancelled
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d streaks, cancelled %d reminders\n", deleted, cancelled)
			return errs
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joinpeakapp/peak/internal/cli/formatter"
	"github.com/joinpeakapp/peak/internal/service"
)

func newRemindersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Schedule and inspect workout reminders",
	}

	cmd.AddCommand(
		newRemindersScheduleCmd(app),
		newRemindersPreviewCmd(app),
		newRemindersListCmd(app),
		newRemindersToggleCmd(app, true),
		newRemindersToggleCmd(app, false),
	)

	return cmd
}

func printReport(cmd *cobra.Command, report *service.ScheduleReport, err error) error {
	if report != nil {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleReport(report))
	}
	return err
}

func newRemindersScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Replace all workout reminders with a fresh schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Reminders.ScheduleAllReminders(cmd.Context())
			return printReport(cmd, report, err)
		},
	}
}

func newRemindersPreviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the reminders a schedule pass would create",
		RunE: func(cmd *cobra.Command, args []string) error {
			aggs, err := app.Reminders.Preview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAggregates(aggs, app.now()))
			return nil
		},
	}
}

func newRemindersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled workout reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			enabled, err := app.Reminders.Enabled(ctx)
			if err != nil {
				return err
			}
			owned, err := app.Reminders.ListOwned(ctx)
			if err != nil {
				return err
			}
			if !enabled {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Reminders are disabled."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotifications(owned, app.location()))
			return nil
		},
	}
}

func newRemindersToggleCmd(app *App, enable bool) *cobra.Command {
	use, short := "disable", "Turn reminders off and cancel scheduled ones"
	if enable {
		use, short = "enable", "Turn reminders on and schedule them"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Reminders.SetEnabled(cmd.Context(), enable)
			return printReport(cmd, report, err)
		},
	}
}

package cli

import (
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/joinpeakapp/peak/internal/domain"
	"github.com/joinpeakapp/peak/internal/service"
)

// App holds the services and host settings used by CLI commands.
type App struct {
	Workouts   service.WorkoutService
	Reminders  service.ReminderService
	Streaks    service.StreakService
	Completion service.CompletionService

	Policy   domain.WindowPolicy
	Location *time.Location
	Now      func() time.Time

	// IsInteractive reports whether forms may be shown. Nil means never.
	IsInteractive func() bool
	// RunForm runs a huh form. Nil means form.Run.
	RunForm func(*huh.Form) error
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().In(a.location())
	}
	return a.Now().In(a.location())
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

// NewRootCmd creates the top-level "peak" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "peak",
		Short:         "Workout streaks and reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWorkoutCmd(app),
		newCompleteCmd(app),
		newStreakCmd(app),
		newRemindersCmd(app),
		newResetCmd(app),
	)

	return root
}

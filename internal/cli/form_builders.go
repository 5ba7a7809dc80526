package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/joinpeakapp/peak/internal/cli/formatter"
	"github.com/joinpeakapp/peak/internal/domain"
)

func peakHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// workoutFormValues is what the workout form collects. Fields are strings
// so huh can bind them directly.
type workoutFormValues struct {
	Name     string
	Kind     string
	Weekday  string
	Interval string
}

func (v workoutFormValues) frequency() (domain.Frequency, error) {
	switch domain.FrequencyKind(v.Kind) {
	case domain.FrequencyWeekly:
		day, err := domain.ParseWeekday(v.Weekday)
		if err != nil {
			return domain.Frequency{}, err
		}
		return domain.WeeklyOn(day), nil
	case domain.FrequencyInterval:
		n, err := strconv.Atoi(strings.TrimSpace(v.Interval))
		if err != nil {
			return domain.Frequency{}, domain.ErrInvalidFrequency
		}
		return domain.EveryNDays(n), nil
	default:
		return domain.NoFrequency(), nil
	}
}

// workoutForm asks for a name and frequency. The weekday and interval
// groups only show for the matching kind.
func workoutForm(v *workoutFormValues) *huh.Form {
	weekdays := make([]huh.Option[string], 0, 7)
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		weekdays = append(weekdays, huh.NewOption(strings.ToUpper(d[:1])+d[1:], d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workout Name").
				Placeholder("Push day").
				Value(&v.Name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Flexible (no reminders)", string(domain.FrequencyNone)),
					huh.NewOption("Weekly on a set day", string(domain.FrequencyWeekly)),
					huh.NewOption("Every N days", string(domain.FrequencyInterval)),
				).
				Value(&v.Kind),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Day of Week").
				Options(weekdays...).
				Value(&v.Weekday),
		).WithHideFunc(func() bool { return v.Kind != string(domain.FrequencyWeekly) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Repeat Every (days)").
				Placeholder("3").
				Value(&v.Interval).
				Validate(validatePositiveInt),
		).WithHideFunc(func() bool { return v.Kind != string(domain.FrequencyInterval) }),
	).WithTheme(peakHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("must be a whole number of at least 1")
	}
	return nil
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joinpeakapp/peak/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// urgentDays is the days-left threshold at which a live streak turns red.
const urgentDays = 2

// LossStyle colors a live streak by how close it is to lapsing.
func LossStyle(daysLeft, graceDays int) lipgloss.Style {
	switch {
	case daysLeft <= urgentDays:
		return StyleRed
	case graceDays > 0 && daysLeft*2 <= graceDays:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// StreakIndicator returns "● 5" for a live run and a dim "○ 0" otherwise.
func StreakIndicator(s *domain.StreakState, daysLeft, graceDays int) string {
	if s == nil || !s.IsActive() {
		return StyleDim.Render("○ 0")
	}
	return LossStyle(daysLeft, graceDays).Render(fmt.Sprintf("● %d", s.Current))
}

// OutcomeBadge renders what a completion did to the run.
func OutcomeBadge(o domain.StreakOutcome) string {
	switch o {
	case domain.StreakStarted:
		return StyleBlue.Render("▲ started")
	case domain.StreakContinued:
		return StyleGreen.Render("▲ continued")
	case domain.StreakReset:
		return StyleYellow.Render("↺ reset")
	case domain.StreakBackdated:
		return StyleDim.Render("◦ logged, streak unchanged")
	default:
		return StyleDim.Render(string(o))
	}
}

// FrequencyBadge renders a workout's frequency in its kind's color.
func FrequencyBadge(f domain.Frequency) string {
	switch f.Kind {
	case domain.FrequencyWeekly:
		return StylePurple.Render(f.Describe())
	case domain.FrequencyInterval:
		return StyleBlue.Render(f.Describe())
	default:
		return StyleDim.Render(f.Describe())
	}
}

// Header renders an upper-case section title with a dim underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/joinpeakapp/peak/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RelativeDay describes day relative to today by calendar days.
func RelativeDay(day, today time.Time) string {
	n := domain.DaysBetween(today, day)
	switch {
	case n == 0:
		return "Today"
	case n == 1:
		return "Tomorrow"
	case n == -1:
		return "Yesterday"
	case n > 0:
		return fmt.Sprintf("In %dd", n)
	default:
		return fmt.Sprintf("%dd ago", -n)
	}
}

// HumanDay renders a calendar day as "Fri Jan 5".
func HumanDay(t time.Time) string {
	return t.Format("Mon Jan 2")
}

// OptionalDay renders a nullable date, or "--".
func OptionalDay(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return domain.DayKey(*t)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Plural returns "1 day" or "3 days".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

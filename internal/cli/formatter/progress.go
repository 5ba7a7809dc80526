package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderWindow draws how much of a streak's grace window is left, e.g.
// "[██████░░░░] 9/14d". The bar uses the same colors as LossStyle.
func RenderWindow(daysLeft, graceDays, width int) string {
	if width < 2 {
		width = 2
	}
	if graceDays < 1 {
		return fmt.Sprintf("[%s] %s", StyleDim.Render(strings.Repeat(emptyBlock, width)), Dim("--"))
	}
	daysLeft = min(max(daysLeft, 0), graceDays)

	filled := daysLeft * width / graceDays
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %d/%dd", LossStyle(daysLeft, graceDays).Render(bar), daysLeft, graceDays)
}

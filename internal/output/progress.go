package output

import (
	"fmt"
	"strings"
)

// Bar renders value as a share of max.
// Example: "████████░░░░"
func Bar(value, max, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if max > 0 && value > 0 {
		filled = int(float64(value) / float64(max) * float64(width))
		if filled == 0 {
			filled = 1
		}
	}
	if filled > width {
		filled = width
	}
	return StyleAccent.Render(strings.Repeat("█", filled)) + StyleMuted.Render(strings.Repeat("░", width-filled))
}

// TrendArrow returns a styled trend indicator for an integer delta.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
func TrendArrow(delta int, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%d", delta)
	} else {
		arrow = fmt.Sprintf("▼ %d", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section returns a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 50))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoadBar renders a day's load like [████░░░░]  45%. The bar goes
// yellow past 75% and red when the day is fully booked; overbooked days
// carry the raw figure after the bar.
func RenderLoadBar(load, raw float64, width int) string {
	load = min(max(load, 0), 1)
	width = max(width, 2)

	filled := min(int(load*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case load >= 1:
		style = StyleRed
	case load > 0.75:
		style = StyleYellow
	}

	out := fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), load*100)
	if raw > 1 {
		out += StyleRed.Render(fmt.Sprintf(" (booked %.0f%%)", raw*100))
	}
	return out
}

package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TimeLayout is how timestamps appear in terminal output. Times are shown
// in UTC, matching how the store keeps them.
const TimeLayout = "2006-01-02 15:04"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.UTC().Format(TimeLayout)
}

// FormatWindow renders a start/end pair, dropping the repeated date when
// both ends fall on the same day.
func FormatWindow(start, end time.Time) string {
	s, e := start.UTC(), end.UTC()
	if s.Format(time.DateOnly) == e.Format(time.DateOnly) {
		return fmt.Sprintf("%s–%s", s.Format(TimeLayout), e.Format("15:04"))
	}
	return fmt.Sprintf("%s → %s", s.Format(TimeLayout), e.Format(TimeLayout))
}

// FormatMinutes converts raw minutes into a compact "1h 30m" form.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatPct renders an allocation percentage without trailing zeros.
func FormatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// FormatDelta renders a signed shift such as "+25h" or "-30m".
func FormatDelta(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return sign + FormatMinutes(int(d.Minutes()))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return StyleDim.Render("--")
	}
	return s
}

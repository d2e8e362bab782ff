package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired base palette.
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

// Task status colors, shared with the planning board.
var (
	ColorPlanned    = lipgloss.Color("#3498db")
	ColorInProgress = lipgloss.Color("#f39c12")
	ColorCompleted  = lipgloss.Color("#2ecc71")
	ColorOnHold     = lipgloss.Color("#95a5a6")
	ColorCancelled  = lipgloss.Color("#e74c3c")
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

// StatusColor returns the display color of a task status.
func StatusColor(status domain.TaskStatus) lipgloss.Color {
	switch status {
	case domain.TaskPlanned:
		return ColorPlanned
	case domain.TaskInProgress:
		return ColorInProgress
	case domain.TaskCompleted:
		return ColorCompleted
	case domain.TaskOnHold:
		return ColorOnHold
	case domain.TaskCancelled:
		return ColorCancelled
	default:
		return ColorDim
	}
}

// StatusPill returns a colored indicator such as "● InProgress".
func StatusPill(status domain.TaskStatus) string {
	icon := "●"
	switch status {
	case domain.TaskPlanned:
		icon = "○"
	case domain.TaskCompleted:
		icon = "✔"
	case domain.TaskOnHold:
		icon = "⏸"
	case domain.TaskCancelled:
		icon = "✖"
	}
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Render(icon + " " + string(status))
}

// ResourceTypeBadge renders a resource type in purple, or "--" when unset.
func ResourceTypeBadge(rt domain.ResourceType) string {
	if rt == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(string(rt))
}

// ActiveBadge renders a resource's active flag.
func ActiveBadge(active bool) string {
	if active {
		return StyleGreen.Render("active")
	}
	return StyleDim.Render("inactive")
}

// Header renders an uppercased section header with an underline.
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

package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodsched/internal/cli/formatter"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme matches the formatter palette: orange accent when focused,
// dimmed otherwise.
func huhTheme() *huh.Theme {
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

func resourceTypeOptions() []huh.Option[string] {
	types := domain.ResourceTypes
	opts := make([]huh.Option[string], len(types))
	for i, rt := range types {
		opts[i] = huh.NewOption(string(rt), string(rt))
	}
	return opts
}

// resourceForm prompts for the fields `resource add` needs when run on a
// terminal without --name.
func resourceForm(f *resourceFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("CNC Mill 2").
				Value(&f.name).
				Validate(validateRequired("name")),
			huh.NewSelect[string]().
				Title("Type").
				Options(resourceTypeOptions()...).
				Value(&f.rtype),
			huh.NewInput().
				Title("Department").
				Placeholder("Machining").
				Value(&f.department),
			huh.NewInput().
				Title("Working hours (blank for none)").
				Placeholder("08:00-16:00").
				Value(&f.hours).
				Validate(validateWorkingHours),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateWorkingHours accepts empty or "HH:MM-HH:MM".
func validateWorkingHours(s string) error {
	if s == "" {
		return nil
	}
	from, to, ok := strings.Cut(s, "-")
	if !ok || !isClock(from) || !isClock(to) {
		return fmt.Errorf("use HH:MM-HH:MM")
	}
	return nil
}

func isClock(s string) bool {
	var h, m int
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || n != 2 {
		return false
	}
	return len(s) == 5 && h >= 0 && h < 24 && m >= 0 && m < 60
}

package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/zentask/internal/cli/formatter"
	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// zentaskHuhTheme returns a huh theme matching the formatter palette.
func zentaskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

func priorityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.ValidPriorities))
	for _, p := range domain.ValidPriorities {
		opts = append(opts, huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), string(p)))
	}
	return opts
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.Categories))
	for _, c := range domain.Categories {
		opts = append(opts, huh.NewOption(c.Icon+" "+c.Name, c.ID))
	}
	return opts
}

// addTaskForm collects a new task into f. Unset enum fields start at their
// defaults so the selects have a sensible initial position.
func addTaskForm(f *taskInputFlags) *huh.Form {
	if f.priority == "" {
		f.priority = string(domain.PriorityMedium)
	}
	if f.category == "" {
		f.category = domain.DefaultCategoryID
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs doing?").
				Value(&f.title).
				Validate(validateTitle),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details").
				Value(&f.description),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&f.priority),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&f.category),
			huh.NewConfirm().
				Title("Let the AI pick the priority instead?").
				Value(&f.suggest),
		),
	).WithTheme(zentaskHuhTheme()).WithShowHelp(false)
}

// runAddForm runs the add form on the terminal. When the user asks for an
// AI suggestion the selected priority is cleared so the suggestion applies.
func runAddForm(f *taskInputFlags) error {
	if err := addTaskForm(f).Run(); err != nil {
		return err
	}
	if f.suggest {
		f.priority = ""
	}
	return nil
}

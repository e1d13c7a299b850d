package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Run executes the wizard and returns the result.
// Each question runs as its own independent huh.Form to avoid the huh
// v0.8.x YOffset scroll bug that occurs when multiple groups share a
// single viewport.
func Run(questions []Question) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &Result{}
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]

		// Skip questions whose condition is not met.
		if q.Condition != nil && !q.Condition(result) {
			continue
		}

		form := huh.NewForm(buildQuestionGroup(q, result)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	return result, nil
}

// RunWithDefaults runs the wizard with the default questions, seeding
// the URL prompts from the persisted defaults.
func RunWithDefaults(libraryDefault, graphicsDefault string) (*Result, error) {
	return Run(DefaultQuestions(libraryDefault, graphicsDefault))
}

// buildQuestionGroup creates a huh.Group for a single question.
func buildQuestionGroup(q *Question, result *Result) *huh.Group {
	var field huh.Field

	switch q.Type {
	case QuestionTypeSelect:
		field = buildSelectField(q, result)
	case QuestionTypeInput:
		field = buildInputField(q, result)
	}

	return huh.NewGroup(field)
}

// buildSelectField creates a huh.Select field for a select-type question.
func buildSelectField(q *Question, result *Result) *huh.Select[string] {
	var selected string
	if q.Default != "" {
		selected = q.Default
	}

	// Build options statically: huh v0.8.x OptionsFunc forces a fixed
	// viewport height that scrolls the selected item to the top on every
	// update, hiding options above the cursor. Static Options() with no
	// Height() call sizes the viewport to the option count instead.
	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	sel := huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&selected)

	// Wire up value storage after each change.
	qID := q.ID
	sel.Validate(func(val string) error {
		saveAnswer(qID, val, result)
		return nil
	})

	return sel
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, result *Result) *huh.Input {
	var value string
	if q.Default != "" {
		value = q.Default
	}

	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(&value)

	if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}

	qID := q.ID
	required := q.Required
	defVal := q.Default
	inp = inp.Validate(func(val string) error {
		v := strings.TrimSpace(val)
		if v == "" && defVal != "" {
			v = defVal
		}
		if required && v == "" {
			return errors.New("this field is required")
		}
		saveAnswer(qID, v, result)
		return nil
	})

	return inp
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *Result) {
	switch id {
	case "project_name":
		result.ProjectName = value
	case "language":
		result.Language = value
	case "link_mode":
		result.LinkMode = value
	case "library_url":
		result.LibraryURL = value
	case "graphics":
		result.Graphics = value == "true"
	case "graphics_url":
		result.GraphicsURL = value
	case "remote_url":
		result.RemoteURL = value
	}
}

// newWizardTheme creates a huh.Theme with skel branding.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#E8845E"}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(primary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}

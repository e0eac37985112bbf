package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

func run(form *huh.Form) error {
	err := form.WithTheme(currentThemeOrDefault()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Confirm shows a yes/no confirmation prompt.
func Confirm(title, description string, value bool) (bool, error) {
	err := run(huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Value(&value),
	)))
	return value, err
}

// Input shows a single-line text prompt prefilled with value.
func Input(title, description, value string, validate func(string) error) (string, error) {
	field := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	err := run(huh.NewForm(huh.NewGroup(field)))
	return value, err
}

// Select shows a single-select prompt over options, preselecting value.
func Select(title, description string, options []string, value string) (string, error) {
	err := run(huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Description(description).
			Options(huh.NewOptions(options...)...).
			Value(&value),
	)))
	return value, err
}

// Spin runs action behind a spinner titled title. Outside interactive
// terminals the action runs without one.
func Spin(title string, action func() error) error {
	if !IsInteractive() {
		return action()
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Action(func() { actionErr = action() }).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}

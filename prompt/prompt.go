// Package prompt asks the user to pick between branch choices.
//
// The interactive selector runs a single-select form in the terminal.
// Non-interactive contexts (tests, --no-input, dry runs) use
// FirstOption instead, which always picks the default.
package prompt

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Select asks the user to choose one of options and returns the chosen
// index. The first option is the default selection.
func Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to select from")
	}

	huhOptions := make([]huh.Option[int], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, i)
	}

	selected := 0
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(huhOptions...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("selection aborted: %w", err)
	}

	return selected, nil
}

// Secret asks the user for a value without echoing it, e.g. an API key.
func Secret(title string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("input aborted: %w", err)
	}

	return value, nil
}

// FirstOption is a non-interactive chooser that always picks the
// default (index 0).
func FirstOption(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to select from")
	}
	return 0, nil
}

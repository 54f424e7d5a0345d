package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// ErrNoChoices is returned when a prompt is given nothing to pick from.
var ErrNoChoices = errors.New("no choices to select from")

// keyMap returns the prompt key bindings. Escape aborts like ctrl+c.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

// newSelectForm builds the single-choice form used by Select.
func newSelectForm(title string, choices []string, value *string) *huh.Form {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c, c)
	}

	sel := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(value)

	return huh.NewForm(huh.NewGroup(sel)).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(keyMap())
}

// Select asks the user to pick one of choices. The first choice is
// preselected.
func Select(title string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	value := choices[0]
	if err := newSelectForm(title, choices, &value).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", fmt.Errorf("selection cancelled")
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return value, nil
}

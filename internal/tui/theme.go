package tui

import (
	"github.com/charmbracelet/huh"
)

// currentTheme holds the configured theme for prompts.
// When nil, currentThemeOrDefault() returns podsrcTheme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// Empty or unknown names select the podsrc theme.
func SetTheme(name string) {
	if name == "" {
		currentTheme = nil
		return
	}
	currentTheme = GetTheme(name)
}

// currentThemeOrDefault returns the theme prompts are rendered with.
func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return podsrcTheme()
	}
	return currentTheme
}

// resetTheme restores the default theme. Used by tests.
func resetTheme() {
	currentTheme = nil
}

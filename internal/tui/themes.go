package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "podsrc"

// ValidThemes lists the theme names accepted in .podsrc.yaml, default first.
var ValidThemes = []string{DefaultTheme, "base", "base16", "catppuccin", "charm", "dracula"}

var themeBuilders = map[string]func() *huh.Theme{
	DefaultTheme: podsrcTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// IsValidTheme reports whether name is a known theme.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme builds the huh theme registered under name, or returns nil for
// unknown names.
func GetTheme(name string) *huh.Theme {
	build, ok := themeBuilders[name]
	if !ok {
		return nil
	}
	return build()
}

package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	podsrcRedPrimary = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#ef4444"}
	podsrcRedBright  = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	podsrcRedAccent  = lipgloss.AdaptiveColor{Light: "#991b1b", Dark: "#fca5a5"}

	podsrcTextStrong = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	podsrcTextNormal = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
	podsrcTextMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	podsrcTextFaint  = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#4b5563"}

	podsrcBorderFocused = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	podsrcBorderNormal  = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}

	podsrcButtonBg          = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#ef4444"}
	podsrcButtonBgBlurred   = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#1f2937"}
	podsrcButtonText        = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#111827"}
	podsrcButtonTextBlurred = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
)

// podsrcTheme builds the default prompt theme on top of huh.ThemeBase.
func podsrcTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(podsrcBorderFocused)
	t.Focused.Title = t.Focused.Title.Foreground(podsrcRedPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(podsrcTextMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(podsrcRedBright)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(podsrcRedAccent)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(podsrcTextNormal)
	t.Focused.Option = t.Focused.Option.Foreground(podsrcTextNormal)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(podsrcRedBright)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(podsrcRedBright)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(podsrcRedBright)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(podsrcRedPrimary)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(podsrcTextStrong)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(podsrcTextFaint)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(podsrcButtonText).
		Background(podsrcButtonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(podsrcButtonTextBlurred).
		Background(podsrcButtonBgBlurred).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(podsrcBorderNormal)
	t.Blurred.Title = t.Blurred.Title.Foreground(podsrcTextMuted)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(podsrcRedPrimary)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(podsrcTextMuted)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(podsrcTextFaint)
	t.Help.FullKey = t.Help.FullKey.Foreground(podsrcRedPrimary)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(podsrcTextMuted)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(podsrcTextFaint)

	return t
}

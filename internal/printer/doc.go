// Package printer renders styled terminal output with lipgloss.
package printer

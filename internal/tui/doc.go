// Package tui holds the interactive pieces of the CLI: terminal detection,
// prompt themes, the version picker and the scan spinner.
package tui

// Package clix holds helpers shared by the CLI commands: source selection
// from the global flags, scanning, and output rendering.
package clix

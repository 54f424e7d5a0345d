// Package console is the reporting surface for non-fatal diagnostics and the
// switch for colored output.
package console

package tui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action while a spinner titled title is shown.
// Outside an interactive terminal the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsInteractive() {
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Context(ctx).
		ActionWithErr(func(ctx context.Context) error {
			actionErr = action(ctx)
			return actionErr
		}).
		Run()
	if actionErr != nil {
		return actionErr
	}
	return err
}

// Package ui starts the interactive terminal UI.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/tui"
)

// ErrNoTerminal is returned when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("ui: an interactive terminal is required")

type UI struct {
	runner.Base
	// Interactive overrides the terminal check.
	Interactive func() bool
}

func (u *UI) interactive() bool {
	if u.Interactive != nil {
		return u.Interactive()
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func (u *UI) Do(ctx context.Context) error {
	if !u.interactive() {
		return ErrNoTerminal
	}
	u.Service.Log.Debug("starting ui", "signed_in", u.Service.Session.Authenticated())
	return tui.Run(ctx, u.Service)
}

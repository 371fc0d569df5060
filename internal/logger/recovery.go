package logger

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

// TUIShutdown restores the terminal when a panic escapes the TUI. The TUI
// sets it while running.
var TUIShutdown func()

func restoreTerminal() {
	if TUIShutdown != nil {
		TUIShutdown()
	}
	SetConsoleEnabled(true)
}

// Recover traps panics and reports them through FatalWithStackSkip.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// A second panic during recovery just unwinds.
		defer func() { recover() }()

		restoreTerminal()

		if _, ok := r.(FatalError); ok {
			return
		}

		// Skip Recover and runtime.panic.
		FatalWithStackSkip(ctx, 2, "panic: %v", r)
	}
}

// RecoverTUI wraps a tea.Cmd in a recovery block that uses FatalWithStackSkip.
func RecoverTUI(ctx context.Context, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				defer func() { recover() }()

				restoreTerminal()

				if _, ok := r.(FatalError); ok {
					return
				}

				FatalWithStackSkip(ctx, 2, "TUI Panic: %v", r)
			}
		}()
		return cmd()
	}
}

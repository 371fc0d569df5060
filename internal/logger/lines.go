package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

const lineBuffer = 256

var (
	lines   = make(chan string, lineBuffer)
	console atomic.Bool
)

func init() {
	console.Store(true)
}

// SubscribeLogLines returns the feed of formatted log lines. Lines are
// dropped when nobody is reading.
func SubscribeLogLines() <-chan string {
	return lines
}

// SetConsoleEnabled turns stderr logging on or off. The TUI turns it off
// while it owns the terminal.
func SetConsoleEnabled(enabled bool) {
	console.Store(enabled)
}

func consoleEnabled() bool {
	return console.Load()
}

// lineHandler renders records as single short lines for the log panel.
type lineHandler struct {
	attrs []slog.Attr
	group string
}

func newLineHandler() *lineHandler {
	return &lineHandler{}
}

func (h *lineHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-6s %s", r.Time.Format("15:04:05"), LevelName(r.Level), r.Message)

	write := func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	select {
	case lines <- b.String():
	default:
	}
	return nil
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &lineHandler{attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...), group: h.group}
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &lineHandler{attrs: h.attrs, group: group}
}

// LevelName returns the display name of a level.
func LevelName(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelNotice:
		return "NOTICE"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return level.String()
	}
}

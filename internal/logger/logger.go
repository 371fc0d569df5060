package logger

import (
	"StackWin/internal/paths"
	"StackWin/internal/version"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	charmlog "charm.land/log/v2"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// logAt formats printf-style messages and emits one record per line.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}

	for i, line := range strings.Split(msgStr, "\n") {
		r := slog.NewRecord(t, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels layered on slog's.
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the console log level
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel sets the console level. The file never logs less than Info.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

var (
	logFileMu   sync.Mutex
	logFile     *os.File
	logFilePath string
)

// GetLogFilePath returns the path of the current log file, if one is open.
func GetLogFilePath() string {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	return logFilePath
}

// levelStyles labels the custom levels the charm handler does not know about.
func levelStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	label := func(name, color string) lipgloss.Style {
		return lipgloss.NewStyle().SetString(name).Bold(true).MaxWidth(6).Foreground(lipgloss.Color(color))
	}
	styles.Levels[charmlog.Level(LevelTrace)] = label("TRACE", "63")
	styles.Levels[charmlog.Level(LevelDebug)] = label("DEBUG", "63")
	styles.Levels[charmlog.Level(LevelInfo)] = label("INFO", "86")
	styles.Levels[charmlog.Level(LevelNotice)] = label("NOTICE", "42")
	styles.Levels[charmlog.Level(LevelWarn)] = label("WARN", "192")
	styles.Levels[charmlog.Level(LevelError)] = label("ERROR", "204")
	styles.Levels[charmlog.Level(LevelFatal)] = label("FATAL", "134")
	return styles
}

func newCharmHandler(w io.Writer, formatter charmlog.Formatter) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           charmlog.Level(LevelTrace),
		Formatter:       formatter,
	})
	l.SetStyles(levelStyles())
	return l
}

// NewLogger builds the application logger: the console on stderr, the log
// file in the state directory, and the line feed used by the TUI log panel.
func NewLogger() *slog.Logger {
	handlers := []slog.Handler{
		&leveledHandler{
			Handler: newCharmHandler(os.Stderr, charmlog.TextFormatter),
			level:   LevelVar,
			gate:    consoleEnabled,
		},
		&leveledHandler{Handler: newLineHandler(), level: LevelVar},
	}

	if w, err := openLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
	} else {
		handlers = append(handlers, &leveledHandler{
			Handler: newCharmHandler(w, charmlog.LogfmtFormatter),
			level:   FileLevelVar,
		})
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

func openLogFile() (io.Writer, error) {
	path := paths.GetLogFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	logFileMu.Lock()
	logFile, logFilePath = f, path
	logFileMu.Unlock()
	return f, nil
}

// Cleanup flushes and closes the log file.
func Cleanup() {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}

// leveledHandler filters a handler by a dynamic level and an optional gate.
type leveledHandler struct {
	slog.Handler
	level slog.Leveler
	gate  func() bool
}

func (h *leveledHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.gate != nil && !h.gate() {
		return false
	}
	return level >= h.level.Level()
}

func (h *leveledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &leveledHandler{Handler: h.Handler.WithAttrs(attrs), level: h.level, gate: h.gate}
}

func (h *leveledHandler) WithGroup(name string) slog.Handler {
	return &leveledHandler{Handler: h.Handler.WithGroup(name), level: h.level, gate: h.gate}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

// Fatal logs a message with a stack trace at FatalLevel and panics with
// FatalError so the main loop can clean up before exiting.
func Fatal(ctx context.Context, msg any, args ...any) {
	FatalWithStackSkip(ctx, 1, msg, args...)
}

// FatalWithStackSkip is Fatal with skip extra frames dropped from the trace.
func FatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()

	pc := make([]uintptr, 32)
	n := runtime.Callers(2+skip, pc)
	frames := runtime.CallersFrames(pc[:n])

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("  %s:%d (%s)", frame.File, frame.Line, filepath.Base(frame.Function)))
		if !more {
			break
		}
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 {
		msgStr = fmt.Sprintf(msgStr, args...)
	}

	output := []any{
		fmt.Sprintf("%s %s (%s/%s)", version.ApplicationName, version.Version, runtime.GOOS, runtime.GOARCH),
		"### BEGIN STACK TRACE ###",
		trace,
		"### END STACK TRACE ###",
		msgStr,
	}
	logAt(ctx, now, LevelFatal, output)

	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}

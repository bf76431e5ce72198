// Package logging provides the leveled slog logger used by the sparsenet tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is a custom slog level below Debug for per-network output.
const LevelTrace = slog.LevelDebug - 4

var levels = map[string]slog.Level{
	"info":  slog.LevelInfo,
	"debug": slog.LevelDebug,
	"trace": LevelTrace,
}

// ParseLevel maps a level name ("info", "debug" or "trace", case-insensitive)
// to a slog.Level. Unknown names are an error so misconfigured files fail at
// load time instead of silently logging at info.
func ParseLevel(s string) (slog.Level, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("invalid level '%s', must be one of 'info', 'debug', 'trace'", s)
	}
	return lvl, nil
}

// NewLogger creates a text slog.Logger writing records at or above level to w.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: labelTrace,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// labelTrace prints LevelTrace as TRACE instead of slog's "DEBUG-4".
func labelTrace(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

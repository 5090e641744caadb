// Package obslog configures the process-wide structured logger. The
// engine otherwise has no third-party structured logging dependency to
// draw on, so this one corner of the ambient stack stays on the standard
// library's slog rather than importing one for a single call site.
package obslog

import (
	"log/slog"
	"os"
)

// New builds a JSON structured logger writing to stderr at level.
func New(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to
// a slog.Level, defaulting to Info for anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

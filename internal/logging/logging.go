package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init sets the process-wide default slog logger. Logs always go to stderr
// so they never mix with CSV output or echoed events on stdout. jsonFormat
// selects the JSON handler, for daemon logs consumed by other tools.
// Unknown level strings mean info.
func Init(level string, jsonFormat bool) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to a
// slog.Level. Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

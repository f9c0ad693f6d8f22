package logger

import (
	"log/slog"
	"strings"
)

// New builds the service logger from a textual level and a handler constructor.
// Unknown levels fall back to info so a typo in LOGLEVEL never silences logs.
func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	h := handler(parseLevel(level))
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

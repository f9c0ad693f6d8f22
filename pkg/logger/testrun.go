package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards everything; used to keep test output quiet.
func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

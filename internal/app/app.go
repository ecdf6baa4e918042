package app

import (
	"io"
	"log/slog"
)

// NewLogger returns the CLI logger: text to w, info level, debug when asked.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

package main

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a structured JSON slog.Logger on stdout with the given level.
func NewLogger(level slog.Leveler) *slog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("app", "lscan")
}

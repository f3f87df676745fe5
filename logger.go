package main

import (
	"io"
	"log/slog"
	"os"
)

type Logger struct {
	*slog.Logger
	verbose bool
}

func NewLogger(verbose bool) *Logger {
	return newLogger(os.Stderr, verbose)
}

// newLogger writes progress lines at Info, and debug detail when verbose.
func newLogger(w io.Writer, verbose bool) *Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return &Logger{
		Logger:  slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		verbose: verbose,
	}
}

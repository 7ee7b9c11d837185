// Package logging constructs the single structured logger instance used by
// both entrypoints. Nothing here is a package-level global: every
// constructed logger is threaded explicitly through the engine, server and
// agent.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w (a console writer over os.Stdout
// in the entrypoints, via NewConsole). verbose lowers the minimum level to
// debug.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewConsole builds a human-readable console logger for operator-facing
// entrypoints.
func NewConsole(verbose bool) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stdout}, verbose)
}

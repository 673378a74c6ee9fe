// +build !logless

// Package logger provides the zerolog console logger shared by the CLI
// and the internal packages that accept a zerolog.Logger parameter
// (internal/dump). Log carries the process-wide default; New builds a
// scoped logger for a single run, tagging it with the PDE name so
// concurrent runs in the same process (or log aggregator) stay
// distinguishable.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
)

var Log = logger.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// New builds a run-scoped logger writing to w, tagged with run, at the
// given level. A production CLI invocation passes os.Stderr as w; tests
// use zerolog.Nop() directly rather than this constructor.
func New(w io.Writer, run string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(level).
		With().
		Timestamp().
		Str("run", run).
		Logger()
}

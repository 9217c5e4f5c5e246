// Package logger builds the process-wide zerolog instance. Every line
// carries a service field so aggregated streams stay attributable.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "concurrent-ledger"

// New returns the process logger writing to stdout. With pretty enabled
// the output is human-readable console text instead of JSON.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return NewWithWriter(level, w)
}

// NewWithWriter builds a logger against an arbitrary writer, which tests
// use to capture output. Unknown levels fall back to info so a
// misconfigured deployment still logs rather than going silent.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

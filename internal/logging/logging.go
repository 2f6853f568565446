// Package logging builds the process-wide zerolog logger for the loader
// commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a stderr logger in the requested format. "json" emits
// structured lines for piping into log collectors; anything else gets the
// console writer, which suits interactive import runs.
func Setup(format string) zerolog.Logger {
	var w io.Writer = os.Stderr
	if format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

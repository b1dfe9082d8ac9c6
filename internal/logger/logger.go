// Package logger builds the zerolog logger used across branchreview.
//
// Logs always go to a diagnostic stream (stderr by default) so that the review
// report written to stdout can be piped without interleaved log lines.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a timestamped logger. Level is any zerolog level name and falls
// back to info when unparseable. Format "json" emits one JSON object per line;
// anything else uses the human-readable console writer.
func New(level, format string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	output := w
	if format != "json" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).Level(logLevel).With().Timestamp().Logger()
}

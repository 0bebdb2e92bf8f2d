// Package log configures the global zerolog logger for the experiment
// binary. Library packages log through zerolog's package-level logger;
// only the entry point calls Setup.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global logger with the given level, writing
// human-readable console output to stderr.
func Setup(level string) {
	SetupWriter(level, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// SetupWriter is Setup with an explicit destination, used by tests.
func SetupWriter(level string, w io.Writer) {
	zerolog.SetGlobalLevel(ToLevel(level))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ToLevel parses a level name. Unknown names are a programming error.
func ToLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		panic(fmt.Sprintf("invalid log level: %s", level))
	}
}

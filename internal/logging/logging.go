// Package logging builds the zerolog loggers used by the filesystem wrapper
// and the huff command.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel is the environment variable holding the log level.
const EnvLevel = "LOG_LEVEL"

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// return fallback.
func ParseLevel(name string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return fallback
	}
}

// New returns a console logger writing to w at the given level, tagged with
// the component name.
func New(w io.Writer, level zerolog.Level, component string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// FromEnv returns a stderr logger whose level comes from LOG_LEVEL, or
// fallback when the variable is unset or invalid.
func FromEnv(component string, fallback zerolog.Level) zerolog.Logger {
	return New(os.Stderr, ParseLevel(os.Getenv(EnvLevel), fallback), component)
}

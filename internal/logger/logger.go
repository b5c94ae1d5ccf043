package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// NewLogger creates a new zerolog logger with console output
func NewLogger() zerolog.Logger {
	return newLogger(os.Stderr)
}

// NewLoggerWithLevel creates a new logger with a specific log level
func NewLoggerWithLevel(level zerolog.Level) zerolog.Logger {
	logger := NewLogger()
	return logger.Level(level)
}

// ForVerbosity returns a debug logger when verbose is set and an info logger otherwise.
func ForVerbosity(verbose bool) zerolog.Logger {
	if verbose {
		return NewLoggerWithLevel(zerolog.DebugLevel)
	}
	return NewLoggerWithLevel(zerolog.InfoLevel)
}

// NewJSONLogger writes structured records, used where a log collector
// parses the output (hosted trigger).
func NewJSONLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func newLogger(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(output).With().Timestamp().Logger()
}

// Package logging provides a tiny abstraction over structured loggers so the
// rest of AgendaMesh can depend on a minimal interface while callers plug in
// slog, logrus or anything else with key/value semantics.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal structured logging interface consumed by the
// orchestrator, validator, tools and stores. Args are alternating key/value
// pairs, slog style.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Convenience level aliases so callers don't need to import log/slog.
const (
	LogLevelDebug = slog.LevelDebug
	LogLevelInfo  = slog.LevelInfo
	LogLevelWarn  = slog.LevelWarn
	LogLevelError = slog.LevelError
)

// SlogAdapter wraps *slog.Logger to implement Logger.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from an existing *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewSlogLogger builds a Logger writing slog output to w. Format is "json" or
// "text"; anything else defaults to JSON.
func NewSlogLogger(level slog.Level, format string, w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

// LogrusAdapter wraps a *logrus.Logger behind the Logger interface, converting
// alternating key/value args into logrus fields.
type LogrusAdapter struct {
	logger *logrus.Logger
}

// NewLogrusAdapter creates a Logger backed by logrus. A nil logger uses the
// logrus standard logger.
func NewLogrusAdapter(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusAdapter{logger: logger}
}

func (l *LogrusAdapter) fields(args []any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields[key] = args[i+1]
	}
	return fields
}

// Debug logs at debug level.
func (l *LogrusAdapter) Debug(msg string, args ...any) { l.logger.WithFields(l.fields(args)).Debug(msg) }

// Info logs at info level.
func (l *LogrusAdapter) Info(msg string, args ...any) { l.logger.WithFields(l.fields(args)).Info(msg) }

// Warn logs at warn level.
func (l *LogrusAdapter) Warn(msg string, args ...any) { l.logger.WithFields(l.fields(args)).Warn(msg) }

// Error logs at error level.
func (l *LogrusAdapter) Error(msg string, args ...any) { l.logger.WithFields(l.fields(args)).Error(msg) }

// NoOpLogger discards all log messages. Useful for tests or when logging is
// disabled.
type NoOpLogger struct{}

// Debug discards the message.
func (NoOpLogger) Debug(string, ...any) {}

// Info discards the message.
func (NoOpLogger) Info(string, ...any) {}

// Warn discards the message.
func (NoOpLogger) Warn(string, ...any) {}

// Error discards the message.
func (NoOpLogger) Error(string, ...any) {}

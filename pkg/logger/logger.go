package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

// RequestIDKey is the context key for the HTTP request ID.
const RequestIDKey contextKey = "request_id"

// Logger is a structured logger wrapper around slog.
type Logger struct {
	*slog.Logger
}

// New creates a structured logger. Production logs JSON at INFO level,
// everything else logs text at DEBUG level.
func New(env string, output io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewDefault creates a logger writing to stdout.
func NewDefault(env string) *Logger {
	return New(env, os.Stdout)
}

// WithContext adds known context fields to the logger.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		return &Logger{Logger: l.With("request_id", requestID)}
	}
	return l
}

// WithField creates a new logger with an additional field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Logger: l.With(key, value)}
}

// WithError creates a new logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With("error", err.Error())}
}

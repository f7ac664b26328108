package seqbuf

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with seqbuf-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContainer tags every record with a container name.
func (l *Logger) WithContainer(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("container", name),
	}
}

// LogRealloc logs a completed buffer replacement.
func (l *Logger) LogRealloc(reason ReallocReason, oldCap, newCap int, bytes int64) {
	msg := "buffer reallocated"
	if reason == ReasonClone {
		msg = "buffer allocated"
	}
	l.Debug(msg,
		"reason", reason.String(),
		"old_capacity", oldCap,
		"new_capacity", newCap,
		"bytes", bytes,
	)
}

// LogAllocFailure logs a rejected buffer request.
func (l *Logger) LogAllocFailure(reason ReallocReason, requested int, err error) {
	l.Warn("buffer allocation failed",
		"reason", reason.String(),
		"requested_capacity", requested,
		"error", err,
	)
}

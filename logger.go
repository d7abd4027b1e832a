package netbuf

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with arena-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithArena adds the arena name and geometry to the logger.
func (l *Logger) WithArena(name string, bufferCapacity, slots int) *Logger {
	return &Logger{
		Logger: l.Logger.With("arena", name, "buffer_capacity", bufferCapacity, "slots", slots),
	}
}

// WithBacking adds the backing kind ("mmap" or "heap") to the logger.
func (l *Logger) WithBacking(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("backing", kind),
	}
}

// LogArenaCreated logs a successful arena construction.
func (l *Logger) LogArenaCreated(ctx context.Context, bytes int) {
	l.InfoContext(ctx, "arena created",
		"bytes", bytes,
	)
}

// LogArenaExhausted logs a checkout that fell back to a standalone buffer.
// The first fallback of an arena is a warning, later ones are debug noise.
func (l *Logger) LogArenaExhausted(ctx context.Context, fallbacks int64) {
	if fallbacks == 1 {
		l.WarnContext(ctx, "arena exhausted, allocating standalone buffers")
		return
	}
	l.DebugContext(ctx, "arena exhausted",
		"fallbacks", fallbacks,
	)
}

// LogTeardownPending logs a Close that left buffers checked out.
func (l *Logger) LogTeardownPending(ctx context.Context, outstanding int) {
	l.InfoContext(ctx, "arena closed with buffers outstanding, teardown deferred",
		"outstanding", outstanding,
	)
}

// LogTeardown logs the release of the backing region.
func (l *Logger) LogTeardown(ctx context.Context, pending time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "arena teardown failed",
			"pending", pending,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "arena torn down",
		"pending", pending,
	)
}

package recgo

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/recgo/dispatch"
)

// Logger wraps slog.Logger with recgo-specific context.
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

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(s dispatch.Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", s.String()),
	}
}

// WithWorkers adds a worker-count field to the logger.
func (l *Logger) WithWorkers(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", n),
	}
}

// WithPath adds an input-path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, path string, strategy dispatch.Strategy, files, records int, err error) {
	ll := l.WithPath(path).WithStrategy(strategy)
	if err != nil {
		ll.ErrorContext(ctx, "load failed", "error", err)
	} else {
		ll.InfoContext(ctx, "load completed",
			"files", files,
			"records", records,
		)
	}
}

// LogLookup logs an index probe.
func (l *Logger) LogLookup(ctx context.Context, index, key string, hits int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lookup failed",
			"index", index,
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "lookup completed",
			"index", index,
			"key", key,
			"hits", hits,
		)
	}
}

// LogScan logs a predicate scan.
func (l *Logger) LogScan(ctx context.Context, strategy dispatch.Strategy, scanned, hits int, err error) {
	ls := l.WithStrategy(strategy)
	if err != nil {
		ls.ErrorContext(ctx, "scan failed", "error", err)
	} else {
		ls.DebugContext(ctx, "scan completed",
			"scanned", scanned,
			"hits", hits,
		)
	}
}

// LogAggregate logs an aggregation query.
func (l *Logger) LogAggregate(ctx context.Context, kind string, strategy dispatch.Strategy, err error) {
	la := l.WithStrategy(strategy)
	if err != nil {
		la.ErrorContext(ctx, "aggregation failed", "kind", kind, "error", err)
	} else {
		la.DebugContext(ctx, "aggregation completed", "kind", kind)
	}
}

package host

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecset-specific helpers.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// ParseLevel maps a config level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSession adds the session id field.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{Logger: l.Logger.With("session", id)}
}

// LogLoad logs the session start banner.
func (l *Logger) LogLoad(ctx context.Context, name, version string) {
	l.InfoContext(ctx, "plugin loaded",
		"plugin", name,
		"version", version,
	)
}

// LogUnload logs the session end.
func (l *Logger) LogUnload(ctx context.Context, name string, dropped int) {
	l.InfoContext(ctx, "plugin unloaded",
		"plugin", name,
		"vectors_dropped", dropped,
	)
}

// LogDebugMode logs a debug toggle request.
func (l *Logger) LogDebugMode(ctx context.Context, native string, enabled, changed bool) {
	msg := "debugging mode changed"
	if !changed {
		msg = "debugging mode unchanged"
	}
	l.InfoContext(ctx, msg,
		"native", native,
		"enabled", enabled,
	)
}

// LogCall logs a completed native call. count is the vector size after the
// call, or -1 when no vector was resolved.
func (l *Logger) LogCall(ctx context.Context, native string, args []int64, result int64, count int, err error) {
	attrs := []any{
		"native", native,
		"args", args,
		"result", result,
	}
	if count >= 0 {
		attrs = append(attrs, "count", count)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	l.InfoContext(ctx, "native call", attrs...)
}

// LogRejected logs a call refused before dispatch.
func (l *Logger) LogRejected(ctx context.Context, native string, args []int64, err error) {
	l.WarnContext(ctx, "native call rejected",
		"native", native,
		"args", args,
		"error", err,
	)
}

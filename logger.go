package munsell

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/kovidgoyal/munsell/colorconv"
)

// Logger wraps slog.Logger with the fields used by the converter.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithBackend tags the logger with the name of a backend.
func (l *Logger) WithBackend(name string) *Logger {
	return &Logger{Logger: l.Logger.With("backend", name)}
}

// LogBuild logs the outcome of building a notation database.
func (l *Logger) LogBuild(ctx context.Context, records int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "database build failed",
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "database ready",
			"records", records,
			"elapsed", elapsed,
		)
	}
}

// LogForward logs a notation to colorimetry conversion.
func (l *Logger) LogForward(ctx context.Context, notation string, err error) {
	if err != nil {
		l.DebugContext(ctx, "forward conversion failed",
			"notation", notation,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "forward conversion completed",
			"notation", notation,
		)
	}
}

// LogResolve logs a Lab to notation resolution.
func (l *Logger) LogResolve(ctx context.Context, lab colorconv.Lab, r Resolution, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "resolve failed",
			"lab", lab,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "resolve completed",
			"lab", lab,
			"notation", r.Notation,
			"approximate", r.Approximate,
			"distance_squared", r.DistanceSquared,
			"elapsed", elapsed,
		)
	}
}

package lemmago

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/lemmago/lang"
	"github.com/hupe1980/lemmago/registry"
)

// Logger wraps slog.Logger with lemmago-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithLanguage adds a language field to the logger.
func (l *Logger) WithLanguage(language lang.Language) *Logger {
	return &Logger{
		Logger: l.Logger.With("language", language.String()),
	}
}

// LogLoad logs a dictionary load.
func (l *Logger) LogLoad(ctx context.Context, name string, format registry.Format, size int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dictionary load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dictionary registered",
			"name", name,
			"format", format.String(),
			"bytes", size,
		)
	}
}

// LogAnalyze logs an analyzed word.
func (l *Logger) LogAnalyze(ctx context.Context, language lang.Language, word string, lemmas int) {
	l.DebugContext(ctx, "word analyzed",
		"language", language.String(),
		"word", word,
		"lemmas", lemmas,
	)
}

// LogBatch logs a batch analysis.
func (l *Logger) LogBatch(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch analysis interrupted",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.DebugContext(ctx, "batch analysis completed",
			"count", count,
		)
	}
}

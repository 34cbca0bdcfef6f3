package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/akolanti/DocSummarizer/internal/config"
)

type Logger struct {
	inner *slog.Logger
}

func Init(cfg config.LogConfig) {
	InitWithWriter(cfg, os.Stdout)
}

func InitWithWriter(cfg config.LogConfig, w io.Writer) {
	options := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}

	var handler slog.Handler
	if cfg.Prod {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

// ForContext tags the logger with the trace id carried by ctx, if any.
func (l *Logger) ForContext(ctx context.Context) *Logger {
	if trace := config.TraceID(ctx); trace != "" {
		return l.With(config.TRACE_ID_KEY, trace)
	}
	return l
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logWithLevel(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logWithLevel(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logWithLevel(slog.LevelDebug, msg, args...)
}

func (l *Logger) logWithLevel(level slog.Level, msg string, args ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	l.inner.Log(context.Background(), level, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}

package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// SlogLogger is the default Logger backend. It forwards each call to the
// context-aware variant of the wrapped *slog.Logger, so handlers that read
// values from ctx see them.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an already configured *slog.Logger. Use New to get one
// built from Options.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// newSlogLogger writes to w at the given level. Format "json" selects the
// JSON handler; anything else gets logfmt-style text.
func newSlogLogger(w io.Writer, level, format string) *SlogLogger {
	ho := &slog.HandlerOptions{Level: slogLevel(level)}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}
	return NewSlogLogger(slog.New(h))
}

// slogLevel maps a config level name to slog. Unknown names mean info.
func slogLevel(l string) slog.Level {
	switch strings.ToLower(l) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

// With returns a child sharing the same handler, so level and format carry over.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

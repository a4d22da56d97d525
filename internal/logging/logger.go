// Package logging defines the structured-logging interface used across the
// client and its slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "logged in", "email", email)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// Backends accepted by New.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Options selects and tunes a Logger implementation.
type Options struct {
	Backend string // "slog" or "zap"
	Level   string // debug, info, warn, error
	Format  string // "text" or "json"; zap always writes json unless text is asked
	Writer  io.Writer
}

// New builds the Logger described by opts. Output defaults to stderr so it
// does not interleave with prompts written to stdout.
func New(opts Options) (Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	switch opts.Backend {
	case BackendSlog, "":
		return newSlogLogger(w, opts.Level, opts.Format), nil
	case BackendZap:
		return newZapLogger(w, opts.Level, opts.Format), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

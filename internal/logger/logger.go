// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// task tracker.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
//
// Loggers built by NewLogger write through a diode ring buffer, so a slow
// stdout never stalls request handling. When the buffer overflows the
// oldest messages are dropped and the number of dropped messages is
// reported on stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// CorrelationIDField is the log field carrying the request correlation ID.
const CorrelationIDField = "correlation_id"

const (
	diodeBufferSize   = 10000
	diodePollInterval = 10 * time.Millisecond
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger

	closer io.Closer
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "server", "worker") that writes JSON to os.Stdout.
//
// The logger is configured with:
//   - a "role" field set to role, useful for filtering logs from different
//     application components;
//   - a "time" timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     (instead of the default file:line format) for easier log navigation.
func NewLogger(role string) *Logger {
	return NewLoggerWithWriter(role, nopCloser{os.Stdout})
}

// NewLoggerWithWriter is like NewLogger but writes to out. If out
// implements io.Closer it is closed by [Logger.Close].
func NewLoggerWithWriter(role string, out io.Writer) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"

	w := diode.NewWriter(out, diodeBufferSize, diodePollInterval, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger: dropped %d messages\n", missed)
	})

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger, closer: w}
}

// SetLevel parses level ("debug", "info", "warn", ...) and sets it as the
// zerolog global level.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("error parsing log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Close stops the background writer after giving it one poll interval to
// drain queued messages. It is a no-op for loggers not built by NewLogger.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	time.Sleep(2 * diodePollInterval)
	return l.closer.Close()
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger()}
}

// WithCorrelationID derives a child logger tagged with the correlation ID
// and stores it in ctx, so that every FromContext call made while serving
// the request logs the same ID.
func (l *Logger) WithCorrelationID(ctx context.Context, id string) (context.Context, *Logger) {
	child := l.With().Str(CorrelationIDField, id).Logger()
	return child.WithContext(ctx), &Logger{Logger: child}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default context
// logger, so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}

// FromContextOr returns the logger attached to ctx, or fallback when ctx
// carries none. Faults that must always be recorded log through it.
func FromContextOr(ctx context.Context, fallback *Logger) *Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled && fallback != nil {
		return fallback
	}
	return &Logger{Logger: *l}
}

type nopCloser struct {
	io.Writer
}

// Package logger provides a structured, levelled logger built on zerolog.
//
// The key extension over the bare zerolog logger is WithCtx: it returns the
// logger stored in the request context, already tagged with the request ID,
// so every line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info().Uint("order_id", id).Msg("order created")
//	// → {"level":"info","request_id":"…","order_id":7,"message":"order created"}
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// L is the process-wide base logger. Setup replaces it at boot.
var L = New(os.Stdout, "local", "debug")

// New builds a logger writing to w. Production environments emit JSON; any
// other environment gets the human-readable console writer.
func New(w io.Writer, env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && parsed != zerolog.NoLevel {
		lvl = parsed
	}

	switch env {
	case "production", "prod":
	default:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "orderdesk").
		Logger()
}

// Setup replaces the base logger from config values.
func Setup(env, level string) {
	L = New(os.Stdout, env, level)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// WithCtx returns the logger stored in ctx by the Logger middleware, or the
// base logger if there is none.
func WithCtx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &L
}

// InjectLogger stores l (pre-tagged with request_id) into ctx.
// Called by the Logger middleware; not usually needed in application code.
func InjectLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level. fields are alternating key/value pairs.
func Debug(msg string, fields ...any) { L.Debug().Fields(fields).Msg(msg) }

// Info logs at INFO level.
func Info(msg string, fields ...any) { L.Info().Fields(fields).Msg(msg) }

// Warn logs at WARN level.
func Warn(msg string, fields ...any) { L.Warn().Fields(fields).Msg(msg) }

// Error logs at ERROR level.
func Error(msg string, fields ...any) { L.Error().Fields(fields).Msg(msg) }

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/reqid"
)

// statusWriter captures the status code written downstream.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logger logs each request and injects a request-scoped logger tagged with
// the request_id, so logger.WithCtx(ctx) in handlers carries it.
//
// Wire reqid.Middleware() before this middleware.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := logger.L.With().Str("request_id", reqid.FromCtx(r.Context())).Logger()
		r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		event := reqLog.Info()
		switch {
		case rw.statusCode >= 500:
			event = reqLog.Error()
		case rw.statusCode >= 400:
			event = reqLog.Warn()
		}
		logRequest(event, r, rw.statusCode, time.Since(start))
	})
}

func logRequest(e *zerolog.Event, r *http.Request, status int, took time.Duration) {
	e.Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Dur("duration", took).
		Str("ip", ctx.ClientIP(r)).
		Msg("request")
}

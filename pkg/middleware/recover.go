package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns a 500 envelope.
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
//	r.Use(middleware.Recovery)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.WithCtx(r.Context()).Error().
				Str("panic", fmt.Sprintf("%v", rec)).
				Str("stack", string(debug.Stack())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("panic recovered")
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}

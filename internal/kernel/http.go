// Package kernel assembles the HTTP handler: global middleware, operational
// endpoints and the API routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/orderdesk/app/routes"
	appctx "github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
	"github.com/shashiranjanraj/orderdesk/pkg/middleware"
	"github.com/shashiranjanraj/orderdesk/pkg/reqid"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
	"github.com/shashiranjanraj/orderdesk/pkg/router"
)

// Options tunes the global middleware.
type Options struct {
	RateLimitPerMinute int
	// TrustProxy keys the rate limit on X-Forwarded-For instead of the
	// peer address.
	TrustProxy bool
	CORS               middleware.CORSOptions
	// Health reports dependency health for /healthz. Nil means always healthy.
	Health func(ctx context.Context) error
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel wires the global middleware stack (outermost first):
//
//  1. metrics    total latency, labelled by route pattern
//  2. request id before anything logs
//  3. logger     request-scoped logger with request_id
//  4. recovery   panics become 500 envelopes and are logged with the id
//  5. CORS
//  6. rate limit reject abusers early
func NewHTTPKernel(s routes.Services, opts Options) *HTTPKernel {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(opts.CORS))
	switch {
	case opts.RateLimitPerMinute <= 0:
	case opts.TrustProxy:
		r.Use(middleware.RateLimitBy(opts.RateLimitPerMinute, appctx.ClientIP))
	default:
		r.Use(middleware.RateLimit(opts.RateLimitPerMinute))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz(opts.Health))

	routes.RegisterAPI(r, s)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

func (k *HTTPKernel) Router() *router.Router {
	return k.router
}

func healthz(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "unhealthy: "+err.Error())
				return
			}
		}
		response.Message(w, "ok")
	}
}

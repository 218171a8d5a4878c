// Package metrics provides Prometheus instrumentation for orderdesk.
//
// Wired once in internal/kernel/http.go:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderdesk"

// ─────────────────────────────────────────────
// HTTP
// ─────────────────────────────────────────────

var (
	// RequestDuration is labelled by the chi route pattern, not the raw
	// path, so ids do not explode cardinality.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	ResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"method", "route"},
	)
)

// ─────────────────────────────────────────────
// Storage
// ─────────────────────────────────────────────

var (
	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Duration of database queries in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"operation"}, // select | insert | update | delete | other
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"driver"}, // redis | memory
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"driver"},
	)
)

// ─────────────────────────────────────────────
// Domain
// ─────────────────────────────────────────────

var (
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		},
		[]string{"result"}, // success | invalid
	)

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Orders placed.",
	})

	OrderStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Order status updates by target status.",
		},
		[]string{"status"},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events handed to the broker, by result.",
		},
		[]string{"event", "result"}, // result: ok | error | dropped
	)
)

// DefaultRegistry is the Prometheus registry served on /metrics.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		DBQueryDuration,
		CacheHits,
		CacheMisses,
		LoginAttempts,
		OrdersCreated,
		OrderStatusChanges,
		EventsPublished,
	)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware records duration, count, in-flight and response size for every
// request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			// chi fills the pattern while routing, so read it afterwards.
			route := routePattern(r)
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, route, status).Inc()
			ResponseSize.WithLabelValues(r.Method, route).Observe(float64(rr.size))
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Handler exposes DefaultRegistry in the Prometheus text format.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

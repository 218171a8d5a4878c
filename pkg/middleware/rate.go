// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
)

// idleAfter is how long a client's limiter is kept without traffic.
const idleAfter = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per key. Idle buckets are swept
// on access, at most once per idleAfter.
type limiterSet struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterSet(perMinute int, now func() time.Time) *limiterSet {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &limiterSet{
		visitors:  make(map[string]*visitor),
		every:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		lastSweep: now(),
		now:       now,
	}
}

func (s *limiterSet) allow(ip string) bool {
	s.mu.Lock()
	now := s.now()

	if now.Sub(s.lastSweep) > idleAfter {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > idleAfter {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.every, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	s.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

// RateLimit limits each peer address to perMinute requests per minute, with
// bursts up to the same amount. Forwarding headers are ignored so rotating
// X-Forwarded-For buys nothing.
//
//	r.Use(middleware.RateLimit(config.RateLimitPerMinute()))
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	return RateLimitBy(perMinute, ctx.RemoteIP)
}

// RateLimitBy is RateLimit with a custom key, e.g. ctx.ClientIP behind a
// trusted reverse proxy.
func RateLimitBy(perMinute int, key KeyFunc) func(http.Handler) http.Handler {
	return rateLimit(newLimiterSet(perMinute, time.Now), key)
}

func rateLimit(set *limiterSet, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.allow(key(r)) {
				w.Header().Set("Retry-After", "60")
				response.TooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

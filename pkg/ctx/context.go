// Package ctx provides a request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func ShowOrder(c *ctx.Context) {
//	    id, ok := c.ParamUint("id")
//	    ...
//	    c.Success(view)
//	}
//
//	router.Get("/order/{id}", "orders.show", ctx.Wrap(ShowOrder))
package ctx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/orderdesk/pkg/bind"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int // 0 until written
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a positive integer path parameter.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// ClientIP returns the real client IP, respecting X-Forwarded-For.
func (c *Context) ClientIP() string {
	return ClientIP(c.R)
}

// ClientIP is the request-level form used by middleware. The forwarding
// headers are client-controlled; only trust them behind a proxy that
// overwrites them.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	return RemoteIP(r)
}

// RemoteIP is the host of the connection's peer address.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Set stores a value in the per-request store.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

// Get retrieves a value from the per-request store.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// MustGet panics if the key is absent.
func (c *Context) MustGet(key string) any {
	v, ok := c.Get(key)
	if !ok {
		panic(fmt.Sprintf("ctx: key %q not found in store", key))
	}
	return v
}

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it sends a 422 and returns false.
// On a decode error it sends a 400 and returns false.
//
//	var in services.OrderInput
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, decodeMessage(err))
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// DecodeJSON decodes without validating, for handlers whose service
// validates after its own access checks. Sends a 400 and returns false on
// a decode error.
func (c *Context) DecodeJSON(dest any) bool {
	if err := bind.Decode(c.R, dest); err != nil {
		c.Error(http.StatusBadRequest, decodeMessage(err))
		return false
	}
	return true
}

func decodeMessage(err error) string {
	if errors.Is(err, bind.ErrEmptyBody) {
		return "Request body is required"
	}
	return err.Error()
}

// JSON writes v as-is with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

func (c *Context) envelope(code int, body response.Envelope) {
	c.status = code
	response.Write(c.W, code, body)
}

// Success sends a 200 envelope: {"status":200,"data":...}
func (c *Context) Success(data any) {
	c.envelope(http.StatusOK, response.Envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 envelope.
func (c *Context) Created(data any) {
	c.envelope(http.StatusCreated, response.Envelope{Status: http.StatusCreated, Data: data})
}

// Respond sends an envelope with both a message and data.
func (c *Context) Respond(code int, message string, data any) {
	c.envelope(code, response.Envelope{Status: code, Message: message, Data: data})
}

// Message sends a 200 envelope carrying only a message.
func (c *Context) Message(message string) {
	c.envelope(http.StatusOK, response.Envelope{Status: http.StatusOK, Message: message})
}

// Error sends an error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.envelope(code, response.Envelope{Status: code, Message: message})
}

// ValidationError sends a 422 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.envelope(http.StatusUnprocessableEntity, response.Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func (c *Context) Unauthorized(message ...string) {
	msg := "Unauthorized"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusUnauthorized, msg)
}

// NotFound sends a 404.
func (c *Context) NotFound(message ...string) {
	msg := "Not found"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusNotFound, msg)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }

// Package router is a thin named-route layer over chi.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	routes map[string]string
	infos  []RouteInfo
	mu     sync.RWMutex
}

type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func New() *Router {
	return &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]string),
	}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// Use must be called before any route is registered (chi restriction).
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// NotFound and MethodNotAllowed set the fallback handlers.
func (r *Router) NotFound(h http.HandlerFunc)         { r.mux.NotFound(h) }
func (r *Router) MethodNotAllowed(h http.HandlerFunc) { r.mux.MethodNotAllowed(h) }

func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodGet, path, name, handler, middlewares...)
}

func (r *Router) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodPost, path, name, handler, middlewares...)
}

func (r *Router) Put(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodPut, path, name, handler, middlewares...)
}

func (r *Router) Patch(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodPatch, path, name, handler, middlewares...)
}

func (r *Router) Delete(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodDelete, path, name, handler, middlewares...)
}

// HandleFunc registers handler for every method; it is not named.
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	fullPath := normalizePath(path)
	r.mux.HandleFunc(fullPath, handler)
	r.record("*", fullPath, "")
}

func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.routes[name]
	return path, ok
}

func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}

	return path, nil
}

// Routes lists every registered route sorted by path, then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	out := append([]RouteInfo(nil), r.infos...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func (r *Router) mount(method, path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	fullPath := normalizePath(path)
	r.mux.Method(method, fullPath, chain(handler, middlewares...))
	r.record(method, fullPath, name)
}

func (r *Router) record(method, path, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.infos = append(r.infos, RouteInfo{Method: method, Path: path, Name: name})
	if name != "" {
		r.routes[name] = path
	}
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: append(append([]Middleware(nil), g.middlewares...), middlewares...),
	}
}

func (g *Group) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodGet, path, name, handler, middlewares...)
}

func (g *Group) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodPost, path, name, handler, middlewares...)
}

func (g *Group) Put(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodPut, path, name, handler, middlewares...)
}

func (g *Group) Patch(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodPatch, path, name, handler, middlewares...)
}

func (g *Group) Delete(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodDelete, path, name, handler, middlewares...)
}

func (g *Group) mount(method, path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	fullPath := joinPath(g.prefix, path)
	combined := append(append([]Middleware(nil), g.middlewares...), middlewares...)

	g.router.mux.Method(method, fullPath, chain(handler, combined...))
	g.router.record(method, fullPath, name)
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

// joinPath joins segments with single slashes. A trailing slash on the last
// part is kept, so "/order" + "/" registers "/order/".
func joinPath(parts ...string) string {
	if len(parts) == 0 {
		return "/"
	}

	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.Trim(part, "/")
		if trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	if len(segments) == 0 {
		return "/"
	}

	joined := "/" + strings.Join(segments, "/")
	if last := parts[len(parts)-1]; strings.HasSuffix(last, "/") {
		joined += "/"
	}
	return joined
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return joinPath(path)
}

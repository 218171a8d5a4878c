package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/router"
)

func write(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(body)) } //nolint:errcheck
}

func tag(v string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", v)
			next.ServeHTTP(w, r)
		})
	}
}

func serve(r *router.Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestGroupsKeepTrailingSlashAndChainOrder(t *testing.T) {
	r := router.New()
	orders := r.Group("/order", tag("group"))
	orders.Get("/", "orders.welcome", write("welcome"))
	orders.Patch("/{id}/update-status", "orders.status", write("status"), tag("route"))
	orders.Delete("/{id}/delete", "orders.delete", write("deleted"))

	rec := serve(r, http.MethodGet, "/order/")
	assert.Equal(t, "welcome", rec.Body.String())

	rec = serve(r, http.MethodPatch, "/order/5/update-status")
	assert.Equal(t, "status", rec.Body.String())
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))

	assert.Equal(t, http.StatusMethodNotAllowed, serve(r, http.MethodGet, "/order/5/delete").Code)
}

func TestURL(t *testing.T) {
	r := router.New()
	r.Group("/product").Put("/{id}/update", "products.update", write(""))

	u, err := r.URL("products.update", map[string]string{"id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/product/9/update", u)

	_, err = r.URL("products.update", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRoutesSorted(t *testing.T) {
	r := router.New()
	r.Post("/auth/signup", "auth.signup", write(""))
	r.Get("/", "home", write(""))
	r.HandleFunc("/metrics", write(""))

	assert.Equal(t, []router.RouteInfo{
		{Method: "GET", Path: "/", Name: "home"},
		{Method: "POST", Path: "/auth/signup", Name: "auth.signup"},
		{Method: "*", Path: "/metrics"},
	}, r.Routes())
}

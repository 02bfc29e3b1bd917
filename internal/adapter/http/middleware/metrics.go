package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/accountledger/internal/infrastructure/metrics"
)

// Metrics returns middleware recording HTTP metrics into m.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()

			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			path := routePattern(r)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern prefers the matched chi pattern and falls back to
// normalizePath for requests that never reached a route.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return normalizePath(r.URL.Path)
}

// normalizePath replaces the account id to avoid high cardinality.
// /clientes/1/extrato -> /clientes/{id}/extrato
func normalizePath(path string) string {
	const prefix = "/clientes/"

	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" {
		return path
	}

	if _, suffix, found := strings.Cut(rest, "/"); found {
		return prefix + "{id}/" + suffix
	}
	return prefix + "{id}"
}

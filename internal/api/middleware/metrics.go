// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Surfaces group routes by consumer so dashboards can split API clients
// from DVR frontends polling the HDHomeRun endpoints.
const (
	SurfaceAPI   = "api"
	SurfaceHDHR  = "hdhr"
	SurfaceOps   = "ops"
	SurfaceOther = "other"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dvbchannels_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds by surface and route",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"surface", "method", "route", "status"})

	httpInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dvbchannels_http_requests_in_flight",
		Help: "HTTP requests being served by surface",
	}, []string{"surface"})

	httpLookupMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvbchannels_http_lookup_misses_total",
		Help: "Requests on a known route that found no channel (404)",
	}, []string{"surface", "route"})
)

// surfaceOf classifies a request path. It only looks at the raw path, so
// it also works before chi has matched a route.
func surfaceOf(path string) string {
	switch {
	case path == "/api" || strings.HasPrefix(path, "/api/"):
		return SurfaceAPI
	case path == "/discover.json", strings.HasPrefix(path, "/lineup"):
		return SurfaceHDHR
	case path == "/healthz", path == "/metrics":
		return SurfaceOps
	}
	return SurfaceOther
}

// routeOf returns the matched chi pattern, which keeps label cardinality
// bounded for /api/channels/{number}.
func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Metrics records latency, concurrency and lookup misses per surface.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			surface := surfaceOf(r.URL.Path)

			inFlight := httpInFlight.WithLabelValues(surface)
			inFlight.Inc()
			defer inFlight.Dec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := routeOf(r)
			httpRequestDuration.
				WithLabelValues(surface, r.Method, route, strconv.Itoa(sw.status)).
				Observe(time.Since(start).Seconds())
			if sw.status == http.StatusNotFound && route != "unmatched" {
				httpLookupMisses.WithLabelValues(surface, route).Inc()
			}
		})
	}
}

// statusWriter remembers the first status code written.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}
	return sw.ResponseWriter.Write(b)
}

package middleware

import (
	"net/http"
	"time"

	"guestreview/genius/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count and latency per route.
// Unmatched paths are collapsed into a single "unmatched" label to
// keep cardinality bounded.
func MetricsMiddleware(collector *metrics.Collector, knownRoutes []string) func(http.Handler) http.Handler {
	known := make(map[string]bool, len(knownRoutes))
	for _, route := range knownRoutes {
		known[route] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := r.URL.Path
			if !known[route] {
				route = "unmatched"
			}
			collector.RecordRequest(route, r.Method, rw.statusCode, time.Since(startTime))
		})
	}
}

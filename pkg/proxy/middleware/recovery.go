package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"guestreview/genius/pkg/proxy"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns
// a 500 in the standard failure envelope. The panic and stack trace
// are logged; internal details are not exposed to clients.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(&proxy.ErrorResponse{
					Error: "There was an error processing your request",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"guestreview/genius/pkg/proxy"
)

// TimeoutMiddleware enforces a per-request timeout using
// context.WithTimeout. When the deadline passes before the handler
// finishes, a 504 is returned and the handler's context is cancelled.
// The timeout must cover a full upstream retry cycle, which can wait
// seven seconds in backoff alone.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(w, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return

			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_ = json.NewEncoder(w).Encode(&proxy.ErrorResponse{
						Error: "Request timeout: the request took too long to complete",
					})
				}
			}
		})
	}
}

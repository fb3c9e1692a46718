package middleware

import "net/http"

// CORS header values sent on every response. The wildcard origin and
// fixed header allowlist match what browser clients of the public API
// send: Supabase-style authorization, client info, and apikey headers
// plus content type.
const (
	AllowOriginValue  = "*"
	AllowHeadersValue = "authorization, x-client-info, apikey, content-type"
)

// CORSMiddleware adds CORS headers to every response and terminates
// preflight requests. OPTIONS requests on any route get a 200 with an
// empty body; they never reach the mux.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", AllowOriginValue)
		w.Header().Set("Access-Control-Allow-Headers", AllowHeadersValue)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

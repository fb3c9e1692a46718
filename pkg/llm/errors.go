package llm

import "fmt"

// RateLimitError reports that the upstream signaled rate limiting and
// the local retry budget is exhausted (HTTP 429 after all retries).
type RateLimitError struct {
	// StatusCode is the terminal HTTP status (always 429)
	StatusCode int

	// Body is the raw upstream response body, kept for diagnostics
	Body string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("completion endpoint rate limited (status %d): %s", e.StatusCode, e.Body)
}

// UpstreamError reports a non-2xx, non-429 response from the
// completion endpoint. It is never retried.
type UpstreamError struct {
	// StatusCode is the HTTP status returned by the upstream
	StatusCode int

	// Body is the raw upstream response body, kept for diagnostics
	Body string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion endpoint error (status %d): %s", e.StatusCode, e.Body)
}

// TransportError reports a network-level failure reaching the upstream.
// Transport failures propagate immediately; only explicit rate-limit
// responses are retried.
type TransportError struct {
	// Cause is the underlying network error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("completion endpoint unreachable: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ParseError reports a malformed upstream response body.
type ParseError struct {
	// RawResponse is the response body that failed to parse
	RawResponse string

	// Cause is the underlying decode error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("completion response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConfigError reports invalid client configuration.
type ConfigError struct {
	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("completion client configuration error for field %q: %s", e.Field, e.Message)
}

// ValidationError reports an invalid completion request before it is
// sent upstream.
type ValidationError struct {
	// Field is the name of the invalid field
	Field string

	// Message describes what is invalid about the field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
}

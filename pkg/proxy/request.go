package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RequestError indicates a request body that could not be read or
// decoded.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ParseJSON decodes the request body into dst, enforcing maxBytes.
// Unknown fields are tolerated so clients can evolve independently.
func ParseJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return &RequestError{Cause: err}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &RequestError{Cause: err}
	}

	return nil
}

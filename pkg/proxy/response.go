package proxy

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"guestreview/genius/pkg/llm"
	"guestreview/genius/pkg/summary"
)

// Client-facing failure messages. Internal detail travels in the
// details field; the error field stays stable for UI display.
const (
	msgHighDemand  = "We are experiencing high demand. Please try again in a few moments."
	msgUnavailable = "The service is temporarily unavailable. Please try again in a few minutes."
	msgGeneric     = "There was an error processing your request"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError maps an error to the failure envelope. Exhausted rate
// limits surface as 429; everything else, malformed input included,
// is a uniform 500 so clients need only one failure path.
func WriteError(w http.ResponseWriter, err error) {
	// Summarization exhaustion is always a 500, even when the last
	// attempt died on a rate limit: the summarizer already retried.
	var sumErr *summary.SummarizationError
	if errors.As(err, &sumErr) {
		WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
			Error:   sumErr.Error(),
			Details: msgUnavailable,
		})
		return
	}

	var rateErr *llm.RateLimitError
	if errors.As(err, &rateErr) {
		WriteJSON(w, http.StatusTooManyRequests, &ErrorResponse{
			Error:   msgHighDemand,
			Details: rateErr.Error(),
		})
		return
	}

	var upErr *llm.UpstreamError
	if errors.As(err, &upErr) {
		WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
			Error:   upErr.Error(),
			Details: msgGeneric,
		})
		return
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
			Error:   reqErr.Error(),
			Details: msgGeneric,
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
		Error:   msgGeneric,
		Details: err.Error(),
	})
}

// Package proxy defines the HTTP request and response envelopes for
// the GuestReview Genius API and the helpers for parsing and writing
// them.
package proxy

import "encoding/json"

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	// Message is the guest review or host question to respond to.
	Message string `json:"message"`
}

// ChatResponse is the success envelope of POST /v1/chat. The model's
// reply is passed through verbatim.
type ChatResponse struct {
	Response string `json:"response"`
}

// SummaryRequest is the body of POST /v1/summarize-feedback. The
// feedback batch is kept as raw JSON: its serialized form is the
// cache identity, so it is never reshaped on the way through.
type SummaryRequest struct {
	FeedbackData json.RawMessage `json:"feedbackData"`
}

// SummaryResponse is the success envelope of POST /v1/summarize-feedback.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// SurveyRequest is the body of POST /v1/surveys.
type SurveyRequest struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	PropertyCount int    `json:"propertyCount"`
	PainPoint     string `json:"painPoint"`
}

// FeedbackRequest is the body of POST /v1/feedback.
type FeedbackRequest struct {
	Content string `json:"content"`
}

// IDResponse acknowledges a stored record.
type IDResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the failure envelope for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

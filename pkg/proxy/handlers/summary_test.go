package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"guestreview/genius/pkg/llm"
	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/summary"
)

// stubSummarizer scripts summarization results.
type stubSummarizer struct {
	result    string
	err       error
	lastBatch json.RawMessage
}

func (s *stubSummarizer) Summarize(_ context.Context, feedbackData json.RawMessage) (string, error) {
	s.lastBatch = feedbackData
	if s.err != nil {
		return "", s.err
	}
	return s.result, nil
}

func TestSummarySuccess(t *testing.T) {
	summarizer := &stubSummarizer{result: "Guests love the location."}
	h := NewSummaryHandler(summarizer, 1<<20, nil)

	rec := postJSON(t, h, "/v1/summarize-feedback", `{"feedbackData":[{"content":"great location"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp proxy.SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Summary != "Guests love the location." {
		t.Errorf("unexpected summary %q", resp.Summary)
	}

	// The batch travels through as raw JSON.
	if string(summarizer.lastBatch) != `[{"content":"great location"}]` {
		t.Errorf("batch was reshaped: %s", summarizer.lastBatch)
	}
}

func TestSummaryExhaustion(t *testing.T) {
	summarizer := &stubSummarizer{err: &summary.SummarizationError{
		Attempts: 3,
		Cause:    &llm.UpstreamError{StatusCode: 500, Body: "boom"},
	}}
	h := NewSummaryHandler(summarizer, 1<<20, nil)

	rec := postJSON(t, h, "/v1/summarize-feedback", `{"feedbackData":[{"content":"x"}]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp proxy.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	if !strings.Contains(resp.Details, "temporarily unavailable") {
		t.Errorf("expected unavailable details, got %q", resp.Details)
	}
}

func TestSummaryRateLimitedBatch(t *testing.T) {
	// A rate limit surviving the summarizer's retries arrives wrapped
	// in the exhaustion error and stays a 500: the summarizer already
	// retried, so the client gets the unavailable message, not a 429.
	summarizer := &stubSummarizer{err: &summary.SummarizationError{
		Attempts: 3,
		Cause:    &llm.RateLimitError{StatusCode: 429, Body: "limited"},
	}}
	h := NewSummaryHandler(summarizer, 1<<20, nil)

	rec := postJSON(t, h, "/v1/summarize-feedback", `{"feedbackData":[{"content":"x"}]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for rate-limited exhaustion, got %d", rec.Code)
	}
}

func TestSummaryMissingBatch(t *testing.T) {
	summarizer := &stubSummarizer{result: "unused"}
	h := NewSummaryHandler(summarizer, 1<<20, nil)

	for _, body := range []string{`{}`, `not json`} {
		rec := postJSON(t, h, "/v1/summarize-feedback", body)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("body %q: expected 500, got %d", body, rec.Code)
		}
		var resp proxy.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid error JSON: %v", err)
		}
		if resp.Error == "" {
			t.Errorf("body %q: expected error field", body)
		}
	}
	if summarizer.lastBatch != nil {
		t.Error("invalid bodies must not reach the summarizer")
	}
}

func TestSummaryGenericError(t *testing.T) {
	summarizer := &stubSummarizer{err: errors.New("unexpected")}
	h := NewSummaryHandler(summarizer, 1<<20, nil)

	rec := postJSON(t, h, "/v1/summarize-feedback", `{"feedbackData":[]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

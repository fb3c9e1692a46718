package proxy

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"guestreview/genius/pkg/llm"
	"guestreview/genius/pkg/summary"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "rate limit",
			err:        &llm.RateLimitError{StatusCode: 429, Body: "limited"},
			wantStatus: http.StatusTooManyRequests,
			wantError:  "high demand",
		},
		{
			name:       "upstream failure",
			err:        &llm.UpstreamError{StatusCode: 503, Body: "down"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "completion endpoint error",
		},
		{
			name:       "summarization exhaustion",
			err:        &summary.SummarizationError{Attempts: 3, Cause: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "summarization failed",
		},
		{
			name: "exhaustion wrapping rate limit stays 500",
			err: &summary.SummarizationError{
				Attempts: 3,
				Cause:    &llm.RateLimitError{StatusCode: 429, Body: "limited"},
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "summarization failed",
		},
		{
			name:       "request error",
			err:        &RequestError{Cause: errors.New("bad json")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "invalid request body",
		},
		{
			name:       "unknown error",
			err:        errors.New("surprise"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "error processing your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type %q", ct)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error JSON: %v", err)
			}
			if !strings.Contains(strings.ToLower(resp.Error), tt.wantError) {
				t.Errorf("expected error containing %q, got %q", tt.wantError, resp.Error)
			}
		})
	}
}

func TestParseJSONSizeLimit(t *testing.T) {
	body := `{"message":"` + strings.Repeat("x", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	var dst ChatRequest
	err := ParseJSON(rec, req, 16, &dst)
	if err == nil {
		t.Fatal("expected error for oversized body")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
}

func TestParseJSONUnknownFieldsTolerated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/chat",
		strings.NewReader(`{"message":"hi","extra":"ignored"}`))
	rec := httptest.NewRecorder()

	var dst ChatRequest
	if err := ParseJSON(rec, req, 1<<20, &dst); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if dst.Message != "hi" {
		t.Errorf("unexpected message %q", dst.Message)
	}
}

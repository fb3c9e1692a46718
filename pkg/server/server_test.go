package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"guestreview/genius/pkg/cache"
	"guestreview/genius/pkg/config"
	"guestreview/genius/pkg/llm"
	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/storage"
	"guestreview/genius/pkg/telemetry/metrics"
)

type stubCompleter struct{ content string }

func (s *stubCompleter) Complete(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: s.content, FinishReason: "stop"}, nil
}

type stubAssembler struct{}

func (stubAssembler) SystemPrompt(context.Context) string { return "system" }

type stubSummarizer struct{ result string }

func (s *stubSummarizer) Summarize(context.Context, json.RawMessage) (string, error) {
	return s.result, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Upstream.APIKey = "test-key"

	store := storage.NewMemoryStore()
	summaryCache := cache.NewMemory(cache.DefaultFreshness)
	t.Cleanup(func() { summaryCache.Close() })

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())

	return NewServer(cfg, Dependencies{
		Completer:  &stubCompleter{content: "model reply"},
		Assembler:  stubAssembler{},
		Summarizer: &stubSummarizer{result: "a summary"},
		Store:      store,
		Cache:      summaryCache,
		Metrics:    collector,
	})
}

func TestRoutesEndToEnd(t *testing.T) {
	h := testServer(t).Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"chat", http.MethodPost, "/v1/chat", `{"message":"hi"}`, http.StatusOK},
		{"summarize", http.MethodPost, "/v1/summarize-feedback", `{"feedbackData":[]}`, http.StatusOK},
		{"survey", http.MethodPost, "/v1/surveys", `{"email":"a@b.co","name":"Dana","propertyCount":1,"painPoint":"responding to reviews"}`, http.StatusCreated},
		{"feedback", http.MethodPost, "/v1/feedback", `{"content":"nice"}`, http.StatusCreated},
		{"admin surveys", http.MethodGet, "/v1/admin/surveys", "", http.StatusOK},
		{"admin feedback", http.MethodGet, "/v1/admin/feedback", "", http.StatusOK},
		{"admin chats", http.MethodGet, "/v1/admin/chats", "", http.StatusOK},
		{"admin summary", http.MethodGet, "/v1/admin/feedback/summary", "", http.StatusOK},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"chat wrong method", http.MethodGet, "/v1/chat", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			// Every response carries CORS headers, errors included.
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("missing CORS origin header, got %q", got)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("missing request ID header")
			}
		})
	}
}

func TestPreflightAnyRoute(t *testing.T) {
	h := testServer(t).Handler()

	for _, path := range []string{"/v1/chat", "/v1/summarize-feedback", "/nope"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200 preflight, got %d", path, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("%s: expected empty preflight body, got %q", path, rec.Body.String())
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "apikey") {
			t.Errorf("%s: unexpected allow-headers %q", path, got)
		}
	}
}

func TestChatEnvelope(t *testing.T) {
	h := testServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{"message":"hi"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp proxy.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid chat JSON: %v", err)
	}
	if resp.Response != "model reply" {
		t.Errorf("unexpected chat response %q", resp.Response)
	}
}

func TestServerStartShutdown(t *testing.T) {
	srv := testServer(t)
	srv.config.Server.ListenAddress = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start(ctx) }()

	cancel()
	if err := <-errChan; err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if srv.IsRunning() {
		t.Error("server should not report running after shutdown")
	}
}

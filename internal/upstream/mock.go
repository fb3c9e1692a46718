// Package upstream provides a scripted mock completion server for
// tests. It speaks the OpenAI chat-completions wire format and replays
// a configured sequence of steps, so retry behavior can be exercised
// deterministically.
package upstream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Step is one scripted response. Steps are consumed in order; the last
// step repeats for any further requests.
type Step struct {
	// StatusCode of the response. 200 produces a well-formed
	// completion; anything else produces an error body.
	StatusCode int

	// Content is the assistant message for a 200 response.
	Content string

	// Body overrides the response body for non-200 steps.
	Body string

	// Delay is applied before responding.
	Delay time.Duration
}

// MockServer is a scripted OpenAI-compatible completion server.
type MockServer struct {
	server *httptest.Server

	mu       sync.Mutex
	steps    []Step
	requests int
	lastBody []byte
}

// NewMockServer creates a mock server that replays the given steps on
// POST /v1/chat/completions.
func NewMockServer(steps ...Step) *MockServer {
	ms := &MockServer{steps: steps}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handler))
	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close closes the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// Requests returns the number of completion requests received.
func (ms *MockServer) Requests() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.requests
}

// LastBody returns the raw body of the most recent request.
func (ms *MockServer) LastBody() []byte {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.lastBody
}

func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	idx := ms.requests
	if idx >= len(ms.steps) {
		idx = len(ms.steps) - 1
	}
	ms.requests++
	ms.lastBody = body
	var step Step
	if idx >= 0 {
		step = ms.steps[idx]
	} else {
		step = Step{StatusCode: http.StatusOK, Content: "ok"}
	}
	ms.mu.Unlock()

	if step.Delay > 0 {
		time.Sleep(step.Delay)
	}

	if step.StatusCode != http.StatusOK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(step.StatusCode)
		if step.Body != "" {
			fmt.Fprint(w, step.Body)
		} else {
			fmt.Fprintf(w, `{"error":{"message":"scripted failure","code":%d}}`, step.StatusCode)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-mock",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": step.Content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 8,
			"total_tokens":      20,
		},
	})
}

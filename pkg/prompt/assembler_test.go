package prompt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// stubStore returns canned bodies and errors per document name.
type stubStore struct {
	mu      sync.Mutex
	bodies  map[string]string
	errs    map[string]error
	fetched []string
}

func (s *stubStore) Fetch(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	s.fetched = append(s.fetched, name)
	s.mu.Unlock()
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	return s.bodies[name], nil
}

func TestAssembler_AllDocumentsPresent(t *testing.T) {
	store := &stubStore{bodies: map[string]string{
		DocHostGuidelines:         "guideline body",
		DocPositiveReviewPlaybook: "positive body",
		DocNegativeReviewPlaybook: "negative body",
		DocResponseExamples:       "examples body",
	}}

	prompt := NewAssembler(store).SystemPrompt(context.Background())

	for _, body := range []string{"guideline body", "positive body", "negative body", "examples body"} {
		if !strings.Contains(prompt, body) {
			t.Errorf("expected prompt to contain %q", body)
		}
	}
	if !strings.Contains(prompt, "If the review is positive") {
		t.Error("expected prompt to end with the sentiment process description")
	}
	if len(store.fetched) != 4 {
		t.Errorf("expected 4 document fetches, got %d", len(store.fetched))
	}
}

func TestAssembler_MissingDocumentLeavesSlotEmpty(t *testing.T) {
	for _, missing := range DocumentNames() {
		t.Run(missing, func(t *testing.T) {
			store := &stubStore{
				bodies: map[string]string{
					DocHostGuidelines:         "guideline body",
					DocPositiveReviewPlaybook: "positive body",
					DocNegativeReviewPlaybook: "negative body",
					DocResponseExamples:       "examples body",
				},
				errs: map[string]error{missing: &FetchError{Name: missing, StatusCode: 404}},
			}

			prompt := NewAssembler(store).SystemPrompt(context.Background())

			if strings.Contains(prompt, store.bodies[missing]) {
				t.Errorf("expected slot for %q to be empty", missing)
			}
			for name, body := range store.bodies {
				if name == missing {
					continue
				}
				if !strings.Contains(prompt, body) {
					t.Errorf("expected prompt to still contain %q", name)
				}
			}
		})
	}
}

func TestAssembler_AllFetchesFail(t *testing.T) {
	store := &stubStore{errs: map[string]error{
		DocHostGuidelines:         errors.New("boom"),
		DocPositiveReviewPlaybook: errors.New("boom"),
		DocNegativeReviewPlaybook: errors.New("boom"),
		DocResponseExamples:       errors.New("boom"),
	}}

	prompt := NewAssembler(store).SystemPrompt(context.Background())
	if prompt == "" {
		t.Fatal("expected a non-empty prompt even when every fetch fails")
	}
	if !strings.Contains(prompt, "GuestReview Genius") {
		t.Error("expected prompt template text to survive empty slots")
	}
}

func TestHTTPStore_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("apikey"); got != "secret" {
			t.Errorf("expected apikey header, got %q", got)
		}
		switch r.URL.Path {
		case "/host-guidelines":
			_, _ = w.Write([]byte("be kind"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := NewHTTPStore(HTTPStoreConfig{BaseURL: server.URL, APIKey: "secret"})

	body, err := store.Fetch(context.Background(), DocHostGuidelines)
	if err != nil {
		t.Fatalf("expected fetch to succeed, got %v", err)
	}
	if body != "be kind" {
		t.Errorf("expected document body, got %q", body)
	}

	_, err = store.Fetch(context.Background(), "unknown-doc")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError for missing document, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on error, got %d", fetchErr.StatusCode)
	}
}

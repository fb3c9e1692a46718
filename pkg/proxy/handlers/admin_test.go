package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/storage"
)

func seedStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	for _, content := range []string{"love the pool", "checkin was slow"} {
		if err := store.SaveFeedback(ctx, &storage.FeedbackEntry{Content: content}); err != nil {
			t.Fatalf("seed feedback failed: %v", err)
		}
	}
	survey := &storage.SurveyResponse{
		Email:         "host@example.com",
		Name:          "Dana",
		PropertyCount: 2,
		PainPoint:     "Keeping up with review responses",
	}
	if err := store.SaveSurvey(ctx, survey); err != nil {
		t.Fatalf("seed survey failed: %v", err)
	}
	return store
}

func getPath(t *testing.T, h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAdminListings(t *testing.T) {
	store := seedStore(t)
	h := NewAdminHandler(store, &stubSummarizer{})

	rec := getPath(t, h.ListFeedback, "/v1/admin/feedback")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []*storage.FeedbackEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("invalid feedback JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Content != "checkin was slow" {
		t.Errorf("expected newest entry first, got %q", entries[0].Content)
	}

	rec = getPath(t, h.ListSurveys, "/v1/admin/surveys?limit=1")
	var surveys []*storage.SurveyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &surveys); err != nil {
		t.Fatalf("invalid surveys JSON: %v", err)
	}
	if len(surveys) != 1 || surveys[0].Name != "Dana" {
		t.Errorf("unexpected surveys %+v", surveys)
	}

	rec = getPath(t, h.ListChats, "/v1/admin/chats")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for empty chats, got %d", rec.Code)
	}
}

func TestAdminFeedbackSummary(t *testing.T) {
	store := seedStore(t)
	summarizer := &stubSummarizer{result: "Pool praised, checkin needs work."}
	h := NewAdminHandler(store, summarizer)

	rec := getPath(t, h.FeedbackSummary, "/v1/admin/feedback/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp proxy.SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid summary JSON: %v", err)
	}
	if resp.Summary != "Pool praised, checkin needs work." {
		t.Errorf("unexpected summary %q", resp.Summary)
	}

	// The batch sent to the summarizer holds content only, no IDs or
	// timestamps, so the cache key is stable across reloads.
	var batch []map[string]string
	if err := json.Unmarshal(summarizer.lastBatch, &batch); err != nil {
		t.Fatalf("invalid batch JSON: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 batch items, got %d", len(batch))
	}
	for _, item := range batch {
		if len(item) != 1 || item["content"] == "" {
			t.Errorf("unexpected batch item %v", item)
		}
	}
}

func TestAdminFeedbackSummaryEmpty(t *testing.T) {
	summarizer := &stubSummarizer{result: "unused"}
	h := NewAdminHandler(storage.NewMemoryStore(), summarizer)

	rec := getPath(t, h.FeedbackSummary, "/v1/admin/feedback/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if summarizer.lastBatch != nil {
		t.Error("empty store must not hit the summarizer")
	}
}

func TestAdminStorageFailure(t *testing.T) {
	h := NewAdminHandler(failingStore{}, &stubSummarizer{})

	rec := getPath(t, h.ListSurveys, "/v1/admin/surveys")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

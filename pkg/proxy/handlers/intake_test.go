package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/storage"
)

func TestSurveyIntake(t *testing.T) {
	store := storage.NewMemoryStore()
	h := NewSurveyHandler(store, 1<<20)

	rec := postJSON(t, h, "/v1/surveys", `{
		"email": "host@example.com",
		"name": "Dana",
		"propertyCount": 4,
		"painPoint": "Writing thoughtful replies to every review"
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp proxy.IDResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected assigned ID in response")
	}

	surveys, _ := store.ListSurveys(context.Background(), 0)
	if len(surveys) != 1 {
		t.Fatalf("expected 1 stored survey, got %d", len(surveys))
	}
}

func TestSurveyIntakeValidation(t *testing.T) {
	store := storage.NewMemoryStore()
	h := NewSurveyHandler(store, 1<<20)

	rec := postJSON(t, h, "/v1/surveys", `{
		"email": "host@example.com",
		"name": "Dana",
		"propertyCount": 0,
		"painPoint": "Writing thoughtful replies to every review"
	}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp proxy.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	if !strings.Contains(resp.Error, "propertyCount") {
		t.Errorf("expected field name in error, got %q", resp.Error)
	}

	surveys, _ := store.ListSurveys(context.Background(), 0)
	if len(surveys) != 0 {
		t.Error("invalid survey must not persist")
	}
}

func TestFeedbackIntake(t *testing.T) {
	store := storage.NewMemoryStore()
	h := NewFeedbackHandler(store, 1<<20)

	rec := postJSON(t, h, "/v1/feedback", `{"content":"The new checkin flow is great"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h, "/v1/feedback", `{"content":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank content, got %d", rec.Code)
	}

	entries, _ := store.ListFeedback(context.Background(), 0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(entries))
	}
}

func TestIntakeStorageFailure(t *testing.T) {
	h := NewSurveyHandler(failingStore{}, 1<<20)

	rec := postJSON(t, h, "/v1/surveys", `{
		"email": "host@example.com",
		"name": "Dana",
		"propertyCount": 1,
		"painPoint": "Writing thoughtful replies to every review"
	}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for storage failure, got %d", rec.Code)
	}
}

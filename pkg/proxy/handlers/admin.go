package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/storage"
)

// AdminHandler serves the read-only admin listings: stored surveys,
// feedback, chat transcripts, and the aggregated feedback summary.
type AdminHandler struct {
	store      storage.Store
	summarizer Summarizer
	logger     *slog.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(store storage.Store, summarizer Summarizer) *AdminHandler {
	return &AdminHandler{
		store:      store,
		summarizer: summarizer,
		logger:     slog.Default().With("component", "handlers.admin"),
	}
}

// listLimit parses the optional ?limit= query parameter.
func listLimit(r *http.Request) int {
	if val := r.URL.Query().Get("limit"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// ListSurveys handles GET /v1/admin/surveys.
func (h *AdminHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.store.ListSurveys(r.Context(), listLimit(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list surveys", "error", err)
		proxy.WriteError(w, err)
		return
	}
	proxy.WriteJSON(w, http.StatusOK, surveys)
}

// ListFeedback handles GET /v1/admin/feedback.
func (h *AdminHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListFeedback(r.Context(), listLimit(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list feedback", "error", err)
		proxy.WriteError(w, err)
		return
	}
	proxy.WriteJSON(w, http.StatusOK, entries)
}

// ListChats handles GET /v1/admin/chats.
func (h *AdminHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.store.ListChats(r.Context(), listLimit(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list chats", "error", err)
		proxy.WriteError(w, err)
		return
	}
	proxy.WriteJSON(w, http.StatusOK, chats)
}

// FeedbackSummary handles GET /v1/admin/feedback/summary: it loads the
// stored feedback and runs it through the summarizer, so repeated
// dashboard loads inside the freshness window cost one upstream call.
func (h *AdminHandler) FeedbackSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.store.ListFeedback(ctx, listLimit(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load feedback for summary", "error", err)
		proxy.WriteError(w, err)
		return
	}

	if len(entries) == 0 {
		proxy.WriteJSON(w, http.StatusOK, &proxy.SummaryResponse{Summary: "No feedback has been collected yet."})
		return
	}

	// Reduce entries to their content so the cache key does not churn
	// on record IDs or timestamps.
	batch := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		batch = append(batch, map[string]string{"content": entry.Content})
	}
	feedbackData, err := json.Marshal(batch)
	if err != nil {
		proxy.WriteError(w, err)
		return
	}

	result, err := h.summarizer.Summarize(ctx, feedbackData)
	if err != nil {
		h.logger.ErrorContext(ctx, "feedback summary failed", "error", err)
		proxy.WriteError(w, err)
		return
	}

	proxy.WriteJSON(w, http.StatusOK, &proxy.SummaryResponse{Summary: result})
}

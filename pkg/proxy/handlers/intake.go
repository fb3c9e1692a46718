package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/storage"
)

// SurveyHandler handles POST /v1/surveys, storing market-research
// survey submissions.
type SurveyHandler struct {
	store   storage.Store
	maxBody int64
	logger  *slog.Logger
}

// NewSurveyHandler creates a survey intake handler.
func NewSurveyHandler(store storage.Store, maxBody int64) *SurveyHandler {
	return &SurveyHandler{
		store:   store,
		maxBody: maxBody,
		logger:  slog.Default().With("component", "handlers.survey"),
	}
}

// ServeHTTP implements http.Handler.
func (h *SurveyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req proxy.SurveyRequest
	if err := proxy.ParseJSON(w, r, h.maxBody, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to parse survey request", "error", err)
		proxy.WriteError(w, err)
		return
	}

	response := &storage.SurveyResponse{
		Email:         req.Email,
		Name:          req.Name,
		PropertyCount: req.PropertyCount,
		PainPoint:     req.PainPoint,
	}
	if err := h.store.SaveSurvey(ctx, response); err != nil {
		writeIntakeError(w, h.logger, "survey", err)
		return
	}

	proxy.WriteJSON(w, http.StatusCreated, &proxy.IDResponse{ID: response.ID})
}

// FeedbackHandler handles POST /v1/feedback, storing free-form
// feedback entries for later summarization.
type FeedbackHandler struct {
	store   storage.Store
	maxBody int64
	logger  *slog.Logger
}

// NewFeedbackHandler creates a feedback intake handler.
func NewFeedbackHandler(store storage.Store, maxBody int64) *FeedbackHandler {
	return &FeedbackHandler{
		store:   store,
		maxBody: maxBody,
		logger:  slog.Default().With("component", "handlers.feedback"),
	}
}

// ServeHTTP implements http.Handler.
func (h *FeedbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req proxy.FeedbackRequest
	if err := proxy.ParseJSON(w, r, h.maxBody, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to parse feedback request", "error", err)
		proxy.WriteError(w, err)
		return
	}

	entry := &storage.FeedbackEntry{Content: req.Content}
	if err := h.store.SaveFeedback(ctx, entry); err != nil {
		writeIntakeError(w, h.logger, "feedback", err)
		return
	}

	proxy.WriteJSON(w, http.StatusCreated, &proxy.IDResponse{ID: entry.ID})
}

// writeIntakeError distinguishes validation failures, which are the
// caller's fault, from storage failures.
func writeIntakeError(w http.ResponseWriter, logger *slog.Logger, kind string, err error) {
	var valErr *storage.ValidationError
	if errors.As(err, &valErr) {
		proxy.WriteJSON(w, http.StatusBadRequest, &proxy.ErrorResponse{
			Error:   valErr.Error(),
			Details: "Please correct the submission and try again.",
		})
		return
	}
	logger.Error("failed to store "+kind, "error", err)
	proxy.WriteError(w, err)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/telemetry/metrics"
)

// SummaryHandler handles POST /v1/summarize-feedback: it passes the
// raw feedback batch to the summarizer, which answers from cache when
// a fresh summary exists.
type SummaryHandler struct {
	summarizer Summarizer
	maxBody    int64
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// NewSummaryHandler creates a summarization handler.
func NewSummaryHandler(summarizer Summarizer, maxBody int64, collector *metrics.Collector) *SummaryHandler {
	return &SummaryHandler{
		summarizer: summarizer,
		maxBody:    maxBody,
		metrics:    collector,
		logger:     slog.Default().With("component", "handlers.summary"),
	}
}

// ServeHTTP implements http.Handler.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req proxy.SummaryRequest
	if err := proxy.ParseJSON(w, r, h.maxBody, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to parse summary request", "error", err)
		proxy.WriteError(w, err)
		return
	}
	if len(req.FeedbackData) == 0 {
		err := &proxy.RequestError{Cause: errors.New("missing feedbackData")}
		h.logger.WarnContext(ctx, "failed to parse summary request", "error", err)
		proxy.WriteError(w, err)
		return
	}

	result, err := h.summarizer.Summarize(ctx, req.FeedbackData)
	if err != nil {
		h.metrics.RecordUpstream("summary", upstreamOutcome(err))
		h.logger.ErrorContext(ctx, "summarization failed", "error", err)
		proxy.WriteError(w, err)
		return
	}
	h.metrics.RecordUpstream("summary", "success")

	proxy.WriteJSON(w, http.StatusOK, &proxy.SummaryResponse{Summary: result})
}

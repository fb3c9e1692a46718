package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"guestreview/genius/pkg/config"
	"guestreview/genius/pkg/llm"
	"guestreview/genius/pkg/proxy"
	"guestreview/genius/pkg/proxy/middleware"
	"guestreview/genius/pkg/storage"
	"guestreview/genius/pkg/telemetry/metrics"
)

// ChatHandler handles POST /v1/chat: it wraps the guest's message in
// the assembled system prompt, forwards it to the completion API, and
// returns the model's reply verbatim.
type ChatHandler struct {
	completer Completer
	assembler PromptAssembler
	store     storage.Store
	config    config.ChatConfig
	maxBody   int64
	metrics   *metrics.Collector
	logger    *slog.Logger
}

// NewChatHandler creates a chat handler. store may be nil, in which
// case no transcripts are recorded.
func NewChatHandler(completer Completer, assembler PromptAssembler, store storage.Store, cfg config.ChatConfig, maxBody int64, collector *metrics.Collector) *ChatHandler {
	return &ChatHandler{
		completer: completer,
		assembler: assembler,
		store:     store,
		config:    cfg,
		maxBody:   maxBody,
		metrics:   collector,
		logger:    slog.Default().With("component", "handlers.chat"),
	}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req proxy.ChatRequest
	if err := proxy.ParseJSON(w, r, h.maxBody, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to parse chat request", "error", err)
		proxy.WriteError(w, err)
		return
	}
	if req.Message == "" {
		err := &proxy.RequestError{Cause: errors.New("missing message")}
		h.logger.WarnContext(ctx, "failed to parse chat request", "error", err)
		proxy.WriteError(w, err)
		return
	}

	completionReq := &llm.CompletionRequest{
		Model: h.config.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: h.assembler.SystemPrompt(ctx)},
			{Role: llm.RoleUser, Content: req.Message},
		},
		Temperature: h.config.Temperature,
		MaxTokens:   h.config.MaxTokens,
	}

	resp, err := h.completer.Complete(ctx, completionReq)
	if err != nil {
		h.metrics.RecordUpstream("chat", upstreamOutcome(err))
		h.logger.ErrorContext(ctx, "chat completion failed", "error", err)
		proxy.WriteError(w, err)
		return
	}
	h.metrics.RecordUpstream("chat", "success")

	if h.store != nil && h.config.RecordTranscripts {
		transcript := &storage.ChatTranscript{
			RequestID:         middleware.GetRequestID(ctx),
			UserMessage:       req.Message,
			AssistantResponse: resp.Content,
		}
		if err := h.store.SaveChat(ctx, transcript); err != nil {
			// Transcripts are best-effort; the reply still goes out.
			h.logger.WarnContext(ctx, "failed to record chat transcript", "error", err)
		}
	}

	proxy.WriteJSON(w, http.StatusOK, &proxy.ChatResponse{Response: resp.Content})
}

// upstreamOutcome classifies a completion error for metrics.
func upstreamOutcome(err error) string {
	var rateErr *llm.RateLimitError
	if errors.As(err, &rateErr) {
		return "rate_limited"
	}
	return "error"
}

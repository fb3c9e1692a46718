package handlers

import (
	"context"
	"encoding/json"

	"guestreview/genius/pkg/llm"
)

// Completer is the slice of the completion client the chat handler needs.
type Completer interface {
	Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error)
}

// PromptAssembler builds the chat system prompt.
type PromptAssembler interface {
	SystemPrompt(ctx context.Context) string
}

// Summarizer produces cached summaries of feedback batches.
type Summarizer interface {
	Summarize(ctx context.Context, feedbackData json.RawMessage) (string, error)
}

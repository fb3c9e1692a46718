package llm

import "time"

// Message is a single role-tagged message in a conversation.
type Message struct {
	// Role identifies the message sender (system, user, assistant)
	Role string `json:"role"`

	// Content is the message text content
	Content string `json:"content"`
}

// Usage tracks token consumption for a request.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used (prompt + completion)
	TotalTokens int `json:"total_tokens"`
}

// CompletionRequest describes a single completion call to the upstream API.
type CompletionRequest struct {
	// Model is the model identifier (e.g., "gpt-4o-mini")
	Model string `json:"model"`

	// Messages is the conversation to complete (system instruction plus
	// the user's content)
	Messages []Message `json:"messages"`

	// Temperature controls randomness (0.0 to 2.0)
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse is the normalized result of a completion call.
type CompletionResponse struct {
	// ID is the unique response identifier assigned by the upstream API
	ID string `json:"id"`

	// Model is the model that generated the response
	Model string `json:"model"`

	// Content is the generated text of the first choice, verbatim
	Content string `json:"content"`

	// FinishReason indicates why generation stopped (stop, length, ...)
	FinishReason string `json:"finish_reason"`

	// Usage contains token consumption information
	Usage Usage `json:"usage"`

	// Created is the Unix timestamp when the response was created
	Created int64 `json:"created"`
}

// Config contains configuration for the completion client.
type Config struct {
	// BaseURL is the API endpoint base URL
	BaseURL string

	// APIKey is the bearer credential for the completion endpoint
	APIKey string

	// Timeout is the per-request timeout duration
	Timeout time.Duration

	// MaxRetries is the maximum number of retries after a rate-limited
	// first attempt (total call count is MaxRetries + 1)
	MaxRetries int

	// InitialBackoff is the delay before the first retry; each
	// subsequent retry doubles it
	InitialBackoff time.Duration

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	IdleConnTimeout time.Duration
}

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Default client parameters matching the upstream retry policy.
const (
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 1000 * time.Millisecond
)

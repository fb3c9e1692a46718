// Package llm implements the completion-endpoint client with
// transparent recovery from transient rate limiting.
//
// The client retries only on explicit HTTP 429 responses, waiting
// InitialBackoff * 2^attempt between attempts, up to MaxRetries
// retries after the first failure. Transport-level failures and other
// non-2xx statuses propagate immediately as typed errors so callers
// can discriminate with errors.As instead of inspecting messages.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client calls an OpenAI-compatible completion endpoint.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a completion client with connection pooling.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, &ConfigError{Field: "base_url", Message: "base URL is required"}
	}
	if config.APIKey == "" {
		return nil, &ConfigError{Field: "api_key", Message: "API key is required"}
	}

	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = DefaultInitialBackoff
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}, nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// Complete sends a completion request and returns the generated text of
// the first choice. Rate-limited responses are retried with exponential
// backoff; all other failures are terminal on the first occurrence.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := c.config.BaseURL + "/v1/chat/completions"

	for attempt := 0; ; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			// Network and timeout failures are not retried.
			return nil, &TransportError{Cause: err}
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return decodeResponse(resp.Body)
		}

		errorBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusTooManyRequests {
			return nil, &UpstreamError{
				StatusCode: resp.StatusCode,
				Body:       string(errorBody),
			}
		}

		if attempt >= c.config.MaxRetries {
			slog.WarnContext(ctx, "retry budget exhausted",
				"model", req.Model,
				"attempts", attempt+1,
				"status", resp.StatusCode,
			)
			return nil, &RateLimitError{
				StatusCode: resp.StatusCode,
				Body:       string(errorBody),
			}
		}

		backoff := c.config.InitialBackoff << uint(attempt)
		slog.DebugContext(ctx, "rate limited, retrying",
			"model", req.Model,
			"attempt", attempt+1,
			"max_retries", c.config.MaxRetries,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return nil, &TransportError{Cause: ctx.Err()}
		case <-time.After(backoff):
		}
	}
}

// decodeResponse reads and normalizes a successful upstream response.
func decodeResponse(body io.ReadCloser) (*CompletionResponse, error) {
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	var wire chatCompletionResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &ParseError{
			RawResponse: string(raw),
			Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	resp, err := transformResponse(&wire)
	if err != nil {
		return nil, &ParseError{RawResponse: string(raw), Cause: err}
	}
	return resp, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// validateRequest validates the completion request.
func validateRequest(req *CompletionRequest) error {
	if req == nil {
		return &ValidationError{Field: "request", Message: "request cannot be nil"}
	}
	if req.Model == "" {
		return &ValidationError{Field: "model", Message: "model is required"}
	}
	if len(req.Messages) == 0 {
		return &ValidationError{Field: "messages", Message: "at least one message is required"}
	}
	return nil
}

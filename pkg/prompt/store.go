// Package prompt builds the chat assistant's system prompt from a
// fixed set of named reference documents.
package prompt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DocumentStore fetches the content of a named reference document.
type DocumentStore interface {
	// Fetch returns the document body. A missing document is an error;
	// the assembler decides how to degrade.
	Fetch(ctx context.Context, name string) (string, error)
}

// FetchError reports a failed document fetch.
type FetchError struct {
	// Name is the document identifier
	Name string

	// StatusCode is the HTTP status (0 for transport failures)
	StatusCode int

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("document %q fetch failed (status %d)", e.Name, e.StatusCode)
	}
	return fmt.Sprintf("document %q fetch failed: %v", e.Name, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// HTTPStoreConfig contains configuration for the blob-backed store.
type HTTPStoreConfig struct {
	// BaseURL is the blob store endpoint; documents are fetched from
	// <BaseURL>/<name>
	BaseURL string

	// APIKey is an optional credential sent in the apikey header
	APIKey string

	// Timeout is the per-fetch timeout duration
	Timeout time.Duration
}

// HTTPStore fetches documents from an external blob endpoint.
type HTTPStore struct {
	config HTTPStoreConfig
	client *http.Client
}

// NewHTTPStore creates a store backed by an HTTP blob endpoint.
func NewHTTPStore(config HTTPStoreConfig) *HTTPStore {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &HTTPStore{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Fetch retrieves a document body from the blob endpoint.
func (s *HTTPStore) Fetch(ctx context.Context, name string) (string, error) {
	url := s.config.BaseURL + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Name: name, Cause: err}
	}
	if s.config.APIKey != "" {
		req.Header.Set("apikey", s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &FetchError{Name: name, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Name: name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Name: name, Cause: err}
	}
	return string(body), nil
}

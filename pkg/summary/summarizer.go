// Package summary produces cached AI summaries of guest feedback
// batches. Identical batches within the freshness window are answered
// from cache without touching the upstream model, and concurrent
// identical requests are coalesced into a single upstream call.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"guestreview/genius/pkg/cache"
	"guestreview/genius/pkg/llm"
	"guestreview/genius/pkg/telemetry/metrics"
)

// systemInstruction frames every summarization call. The batch itself
// travels as user content.
const systemInstruction = "You are an AI assistant that analyzes customer feedback and survey responses. Provide a concise summary of the key insights, trends, and patterns from the data."

const (
	// DefaultMaxAttempts is the total number of upstream calls made
	// before a batch is reported as unsummarizable.
	DefaultMaxAttempts = 3

	// DefaultInitialDelay is the wait before the second attempt. Each
	// subsequent wait doubles.
	DefaultInitialDelay = 1000 * time.Millisecond

	// DefaultModel is the completion model used for summaries.
	DefaultModel = "gpt-4o-mini"
)

// Completer is the slice of the completion client the summarizer needs.
type Completer interface {
	Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error)
}

// Config controls summarizer behavior. The zero value gets defaults
// from NewSummarizer.
type Config struct {
	Model        string
	MaxAttempts  int
	InitialDelay time.Duration

	// DisableCoalescing turns off single-flight grouping of concurrent
	// identical batches. Mainly for tests and debugging.
	DisableCoalescing bool

	// Metrics receives cache hit/miss and retry counts. Nil disables
	// collection.
	Metrics *metrics.Collector
}

// Summarizer answers feedback batches from cache when fresh and from
// the upstream model otherwise, with its own retry loop. Unlike the
// completion client, which retries only rate limits, the summarizer
// retries every failure: summaries are background reads and a slow
// answer beats an error.
type Summarizer struct {
	completer Completer
	store     cache.Store
	config    Config
	group     singleflight.Group
	logger    *slog.Logger
}

// NewSummarizer creates a summarizer over the given completion client
// and cache store.
func NewSummarizer(completer Completer, store cache.Store, config Config) *Summarizer {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = DefaultInitialDelay
	}
	return &Summarizer{
		completer: completer,
		store:     store,
		config:    config,
		logger:    slog.Default().With("component", "summary"),
	}
}

// CacheKey returns the canonical cache key for a feedback batch: the
// compact serialization of the raw JSON. Key equality is byte
// equality, so reordered fields or whitespace changes produce a
// different key. That trades a few redundant computations for a key
// that never conflates distinct batches.
func CacheKey(feedbackData json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, feedbackData); err != nil {
		return string(feedbackData)
	}
	return buf.String()
}

// Summarize returns a summary of the feedback batch, from cache when a
// fresh entry exists and from the upstream model otherwise.
func (s *Summarizer) Summarize(ctx context.Context, feedbackData json.RawMessage) (string, error) {
	key := CacheKey(feedbackData)

	if value, ok, err := s.store.Get(ctx, key); err != nil {
		// A broken cache is not a miss; the miss counter tracks key
		// absence only.
		s.logger.WarnContext(ctx, "cache read failed, computing summary", "error", err)
	} else if ok {
		s.config.Metrics.RecordCacheHit()
		s.logger.DebugContext(ctx, "returning cached summary")
		return value, nil
	} else {
		s.config.Metrics.RecordCacheMiss()
	}

	if s.config.DisableCoalescing {
		return s.compute(ctx, key)
	}

	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		// The computation is shared with coalesced waiters, so it must
		// not die with the first caller's context.
		return s.compute(context.WithoutCancel(ctx), key)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// compute runs the retry loop and caches the result on success.
func (s *Summarizer) compute(ctx context.Context, key string) (string, error) {
	req := &llm.CompletionRequest{
		Model: s.config.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemInstruction},
			{Role: llm.RoleUser, Content: fmt.Sprintf("Please analyze and summarize this feedback data: %s", key)},
		},
	}

	delay := s.config.InitialDelay
	var lastErr error
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		resp, err := s.completer.Complete(ctx, req)
		if err == nil {
			if cacheErr := s.store.Set(ctx, key, resp.Content); cacheErr != nil {
				s.logger.WarnContext(ctx, "failed to cache summary", "error", cacheErr)
			}
			return resp.Content, nil
		}

		lastErr = err
		s.logger.WarnContext(ctx, "summarization attempt failed",
			"attempt", attempt,
			"max_attempts", s.config.MaxAttempts,
			"error", err,
		)

		if attempt == s.config.MaxAttempts {
			break
		}

		s.config.Metrics.RecordRetry("summary")
		select {
		case <-ctx.Done():
			return "", &SummarizationError{Attempts: attempt, Cause: ctx.Err()}
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", &SummarizationError{Attempts: s.config.MaxAttempts, Cause: lastErr}
}

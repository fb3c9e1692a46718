// Package storage persists survey responses, guest feedback, and chat
// transcripts. It backs the intake and admin endpoints; the proxy
// handlers themselves never require it.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SurveyResponse is one market-research survey submission.
type SurveyResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PropertyCount int       `json:"propertyCount"`
	PainPoint     string    `json:"painPoint"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate checks submission constraints. ID and CreatedAt are
// assigned by the store and not validated here.
func (s *SurveyResponse) Validate() error {
	if !strings.Contains(s.Email, "@") {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if len(strings.TrimSpace(s.Name)) < 2 {
		return &ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}
	if s.PropertyCount < 1 {
		return &ValidationError{Field: "propertyCount", Message: "must be at least 1"}
	}
	if len(strings.TrimSpace(s.PainPoint)) < 10 {
		return &ValidationError{Field: "painPoint", Message: "must be at least 10 characters"}
	}
	return nil
}

// FeedbackEntry is one piece of free-form guest or host feedback.
type FeedbackEntry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks submission constraints.
func (f *FeedbackEntry) Validate() error {
	if strings.TrimSpace(f.Content) == "" {
		return &ValidationError{Field: "content", Message: "must not be empty"}
	}
	return nil
}

// ChatTranscript records one completed proxy exchange. Transcripts are
// recorded best-effort: a storage failure never fails the chat request.
type ChatTranscript struct {
	ID                string    `json:"id"`
	RequestID         string    `json:"requestId,omitempty"`
	UserMessage       string    `json:"userMessage"`
	AssistantResponse string    `json:"assistantResponse"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Store persists records and serves newest-first listings.
// Implementations are safe for concurrent use.
type Store interface {
	SaveSurvey(ctx context.Context, response *SurveyResponse) error
	ListSurveys(ctx context.Context, limit int) ([]*SurveyResponse, error)

	SaveFeedback(ctx context.Context, entry *FeedbackEntry) error
	ListFeedback(ctx context.Context, limit int) ([]*FeedbackEntry, error)

	SaveChat(ctx context.Context, transcript *ChatTranscript) error
	ListChats(ctx context.Context, limit int) ([]*ChatTranscript, error)

	Close() error
}

// DefaultListLimit bounds listings when the caller passes a
// non-positive limit.
const DefaultListLimit = 100

// ValidationError indicates a record that fails submission constraints.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StorageError wraps a backend failure with the backend and operation
// that produced it.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s/%s): %v", e.Backend, e.Operation, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

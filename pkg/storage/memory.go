package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for development and tests.
// Records are lost on restart.
type MemoryStore struct {
	mu          sync.RWMutex
	surveys     []*SurveyResponse
	feedback    []*FeedbackEntry
	transcripts []*ChatTranscript
	now         func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// SaveSurvey implements Store.
func (m *MemoryStore) SaveSurvey(_ context.Context, response *SurveyResponse) error {
	if err := response.Validate(); err != nil {
		return err
	}
	response.ID = uuid.New().String()
	response.CreatedAt = m.now().UTC()

	m.mu.Lock()
	m.surveys = append(m.surveys, response)
	m.mu.Unlock()
	return nil
}

// ListSurveys implements Store.
func (m *MemoryStore) ListSurveys(_ context.Context, limit int) ([]*SurveyResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*SurveyResponse, 0, min(limit, len(m.surveys)))
	for i := len(m.surveys) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.surveys[i])
	}
	return out, nil
}

// SaveFeedback implements Store.
func (m *MemoryStore) SaveFeedback(_ context.Context, entry *FeedbackEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	entry.ID = uuid.New().String()
	entry.CreatedAt = m.now().UTC()

	m.mu.Lock()
	m.feedback = append(m.feedback, entry)
	m.mu.Unlock()
	return nil
}

// ListFeedback implements Store.
func (m *MemoryStore) ListFeedback(_ context.Context, limit int) ([]*FeedbackEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*FeedbackEntry, 0, min(limit, len(m.feedback)))
	for i := len(m.feedback) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.feedback[i])
	}
	return out, nil
}

// SaveChat implements Store.
func (m *MemoryStore) SaveChat(_ context.Context, transcript *ChatTranscript) error {
	transcript.ID = uuid.New().String()
	transcript.CreatedAt = m.now().UTC()

	m.mu.Lock()
	m.transcripts = append(m.transcripts, transcript)
	m.mu.Unlock()
	return nil
}

// ListChats implements Store.
func (m *MemoryStore) ListChats(_ context.Context, limit int) ([]*ChatTranscript, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ChatTranscript, 0, min(limit, len(m.transcripts)))
	for i := len(m.transcripts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.transcripts[i])
	}
	return out, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}

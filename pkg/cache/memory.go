package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	createdAt time.Time
}

// Memory is an in-process Store backed by a map. It is the default
// backend: a single instance serves all requests and its contents are
// lost on restart, which the freshness window makes harmless.
type Memory struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	freshness time.Duration
	now       func() time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the time source. Tests use this to move
// entries past the freshness window without sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates an in-memory store. A non-positive freshness
// falls back to DefaultFreshness.
func NewMemory(freshness time.Duration, opts ...MemoryOption) *Memory {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	m := &Memory{
		entries:   make(map[string]memoryEntry),
		freshness: freshness,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get implements Store. A stale entry reads as a miss; it stays in
// the map until overwritten or purged.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if m.now().Sub(entry.createdAt) >= m.freshness {
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, createdAt: m.now()}
	m.mu.Unlock()
	return nil
}

// Purge implements Store.
func (m *Memory) Purge(_ context.Context) (int, error) {
	cutoff := m.now().Add(-m.freshness)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, entry := range m.entries {
		if !entry.createdAt.After(cutoff) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len implements Store.
func (m *Memory) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close implements Store.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

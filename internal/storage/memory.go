package storage

import (
	"context"
	"sync"
)

// MemoryStore is a process-local KV. It is the "memory" backend and the
// fake used in tests.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int

	// FailWrites makes Set return this error when non-nil.
	FailWrites error
	// FailReads makes Get return this error when non-nil.
	FailReads error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailReads != nil {
		return nil, false, m.FailReads
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes returns the number of successful Set calls.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

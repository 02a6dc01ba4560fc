package session

import (
	"context"
	"sync"
)

// Storage is the persistence backend behind a [Store].
//
// Load returns (nil, nil) when no record exists; an error is reserved for
// backend failures. Save and Delete are idempotent.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// MemoryStorage is an in-process [Storage] used by tests and by deployments
// that do not need sessions to survive restarts.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemoryStorage returns an empty in-process backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored record, or (nil, nil) when nothing was saved.
func (m *MemoryStorage) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Save replaces the stored record.
func (m *MemoryStorage) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.set = true
	return nil
}

// Delete clears the stored record. Deleting an absent record is not an error.
func (m *MemoryStorage) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.set = false
	return nil
}

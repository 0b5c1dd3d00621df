package kv

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps pairs in a map. Values are copied on the way in and out
// so callers cannot mutate stored bytes.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.data[key]), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = clone(value)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}

func (m *MemoryStore) List(_ context.Context) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = clone(v)
	}
	return out, nil
}

// Update applies fn to a private copy and publishes it only if fn succeeds.
// The store is locked for the duration of fn.
func (m *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &MemoryStore{data: maps.Clone(m.data)}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	m.data = staged.data
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

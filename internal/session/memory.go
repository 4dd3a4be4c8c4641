package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a process-local Store. This is the default backend;
// the values it holds are lost on restart, which matches a cleared browser
// session.
func NewMemoryStore() Store {
	return &memoryStore{
		values: make(map[string]string),
	}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.values[key]

	return value, exists, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

func (m *memoryStore) Close() error {
	return nil
}

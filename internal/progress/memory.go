package progress

import (
	"context"
	"sync"
)

// MemoryBackend is an in-process Backend. Setting GetErr or PutErr makes
// the corresponding calls fail.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
	puts   int

	GetErr error
	PutErr error
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.values[key]
	return append([]byte(nil), v...), ok, nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.values[key] = append([]byte(nil), value...)
	m.puts++
	return nil
}

// Puts returns the number of successful writes.
func (m *MemoryBackend) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

package store

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns a process-local snapshot store, used by tests and by the
// CLI when no store path is configured.
func NewMemory() Store {
	return &memoryStore{blobs: map[string][]byte{}}
}

func (s *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memoryStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

package cache

import (
	"context"
	"sync"
)

// in-process store used when no Redis is configured
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	limit   int
}

// limit bounds the number of entries; once reached new keys are not stored
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte), limit: limit}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, ErrMiss
	}

	return data, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && s.limit > 0 && len(s.entries) >= s.limit {
		return nil
	}

	s.entries[key] = append([]byte(nil), value...)
	return nil
}

package currency

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory instrument store, safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	infos map[string]Info
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{infos: make(map[string]Info)}
}

func (s *MemoryStore) Get(ctx context.Context, instrument string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.infos[instrument]
	if !ok {
		return Info{}, ErrCurrencyNotFound
	}
	return info, nil
}

func (s *MemoryStore) Save(ctx context.Context, instrument string, info Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.infos[instrument] = info
	return nil
}

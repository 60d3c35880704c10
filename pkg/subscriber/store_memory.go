package subscriber

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory enrollment store, safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[string]Subscriber
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[string]Subscriber)}
}

func (s *MemoryStore) Get(ctx context.Context, subscriberID string) (Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[subscriberID]
	if !ok {
		return Subscriber{}, ErrSubscriberNotFound
	}
	return sub, nil
}

func (s *MemoryStore) Save(ctx context.Context, sub Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs[sub.ID] = sub
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, subscriberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, subscriberID)
	return nil
}

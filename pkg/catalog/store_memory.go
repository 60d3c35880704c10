package catalog

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory plan store, safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]Plan)}
}

func (s *MemoryStore) Get(ctx context.Context, planID string) (Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[planID]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

func (s *MemoryStore) Save(ctx context.Context, plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plans[plan.ID] = plan
	return nil
}

package authz

import (
	"context"
	"slices"
	"sync"
)

// inMemGrantSource is a GrantSource that serves grants from memory.
// It makes defensive copies to prevent external modifications.
type inMemGrantSource struct {
	mu     sync.RWMutex
	grants map[Principal][]Role
}

// NewInMemGrantSource creates a grant source from a map of role grants.
// The input is deep-copied so the caller can keep mutating its own map.
func NewInMemGrantSource(grants map[Principal][]Role) GrantSource {
	grantsCopy := make(map[Principal][]Role, len(grants))
	for principal, roles := range grants {
		grantsCopy[principal] = slices.Clone(roles)
	}

	return &inMemGrantSource{grants: grantsCopy}
}

// Load returns the map of grants.
// The returned map is safe to read but should not be modified.
func (s *inMemGrantSource) Load(ctx context.Context) (map[Principal][]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.grants, nil
}

package sender

import (
	"context"
	"sync"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

// Registry resolves callers against a trusted-relay set and owns the
// deployer slot. All methods are safe for concurrent use.
type Registry struct {
	auth authz.Authorizer

	mu       sync.RWMutex
	deployer authz.Principal
	relays   map[authz.Principal]struct{}
}

// NewRegistry creates a resolver registry with the given initial deployer.
// Panics if auth is nil to fail fast during initialization.
func NewRegistry(auth authz.Authorizer, deployer authz.Principal) *Registry {
	if auth == nil {
		panic("sender: Authorizer is required")
	}

	return &Registry{
		auth:     auth,
		deployer: deployer,
		relays:   make(map[authz.Principal]struct{}),
	}
}

// Resolve returns the effective principal for the request: the forwarded
// principal when the caller is a trusted relay, the caller otherwise.
func (r *Registry) Resolve(ctx context.Context, req Request) (authz.Principal, error) {
	if req.Caller == "" {
		return "", ErrEmptyCaller
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, trusted := r.relays[req.Caller]; trusted && req.ForwardedFor != "" {
		return req.ForwardedFor, nil
	}
	return req.Caller, nil
}

// Deployer returns the current deployer principal.
func (r *Registry) Deployer() authz.Principal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.deployer
}

// SetDeployer reassigns the deployer slot. The caller must be the current
// deployer AND hold the admin role; both checks are required.
func (r *Registry) SetDeployer(ctx context.Context, caller, next authz.Principal) error {
	if err := r.auth.Require(ctx, caller, authz.RoleAdmin, authz.RoleDefaultAdmin); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.deployer {
		return ErrNotDeployer
	}

	r.deployer = next
	return nil
}

// AddRelay registers a trusted relay principal. Admin-only. The relay set is
// append-only: there is no removal operation.
func (r *Registry) AddRelay(ctx context.Context, caller, relay authz.Principal) error {
	if err := r.auth.Require(ctx, caller, authz.RoleAdmin, authz.RoleDefaultAdmin); err != nil {
		return err
	}
	if relay == "" {
		return ErrEmptyCaller
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.relays[relay] = struct{}{}
	return nil
}

// IsRelay reports whether the principal is a registered trusted relay.
func (r *Registry) IsRelay(principal authz.Principal) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.relays[principal]
	return ok
}

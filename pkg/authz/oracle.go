package authz

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Authorizer answers role-membership queries for the billing ledger.
// Implementations must be safe for concurrent use.
type Authorizer interface {
	// HasRole reports whether the principal holds the given role.
	HasRole(ctx context.Context, principal Principal, role Role) bool

	// Require returns ErrNotAuthorized unless the principal holds at least
	// one of the given roles.
	Require(ctx context.Context, principal Principal, roles ...Role) error
}

// GrantSource defines how role grants are loaded into the oracle.
type GrantSource interface {
	// Load returns all grants, keyed by principal.
	Load(ctx context.Context) (map[Principal][]Role, error)
}

// oracle implements Authorizer over a precomputed grant map.
type oracle struct {
	// grants is treated as immutable after initialization for thread safety.
	grants map[Principal][]Role
}

// NewOracle creates an Authorizer that loads grants from the provided source.
// Grants are validated against the provisioned role set and snapshotted, so
// later mutations of the source are not observed.
func NewOracle(ctx context.Context, source GrantSource) (Authorizer, error) {
	if source == nil {
		panic("authz: GrantSource is required")
	}

	loaded, err := source.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadGrants, err)
	}

	grants := make(map[Principal][]Role, len(loaded))
	for principal, roles := range loaded {
		for _, role := range roles {
			if !validRole(role) {
				return nil, errors.Join(ErrUnknownRole,
					fmt.Errorf("principal %s granted %q", principal, role))
			}
		}
		grants[principal] = slices.Clone(roles)
	}

	return &oracle{grants: grants}, nil
}

func (o *oracle) HasRole(_ context.Context, principal Principal, role Role) bool {
	return slices.Contains(o.grants[principal], role)
}

func (o *oracle) Require(ctx context.Context, principal Principal, roles ...Role) error {
	for _, role := range roles {
		if o.HasRole(ctx, principal, role) {
			return nil
		}
	}
	return ErrNotAuthorized
}

func validRole(role Role) bool {
	switch role {
	case RoleDefaultAdmin, RoleAdmin, RoleCreator:
		return true
	}
	return false
}

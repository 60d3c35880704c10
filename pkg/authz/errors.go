package authz

import "errors"

var (
	// ErrNotAuthorized is returned when a principal lacks the required role.
	ErrNotAuthorized = errors.New("authz: principal is not authorized")

	// ErrFailedToLoadGrants is returned when a grant source cannot be read.
	ErrFailedToLoadGrants = errors.New("authz: failed to load role grants")

	// ErrUnknownRole is returned for roles outside the provisioned set.
	ErrUnknownRole = errors.New("authz: unknown role")
)

package sender

import (
	"context"
	"errors"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

var (
	// ErrEmptyCaller is returned when a request carries no caller identity.
	ErrEmptyCaller = errors.New("sender: caller is required")

	// ErrNotDeployer is returned when a non-deployer tries to reassign the
	// deployer slot.
	ErrNotDeployer = errors.New("sender: caller is not the current deployer")
)

// Request is a caller-identified request before principal resolution.
type Request struct {
	// Caller is the raw transport-level identity.
	Caller authz.Principal

	// ForwardedFor is the principal a relay claims to act for. Ignored
	// unless Caller is a trusted relay.
	ForwardedFor authz.Principal
}

// Resolver maps a raw request to the effective principal.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (authz.Principal, error)
}

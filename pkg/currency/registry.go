package currency

import (
	"context"
	"fmt"

	"github.com/LarryRage/blockbiller/pkg/authz"
	"github.com/LarryRage/blockbiller/pkg/event"
)

// Registry is the public interface of the currency registry.
type Registry interface {
	// Add registers or overwrites an instrument. Admin-only. CostValue is
	// not validated: zero is legal and delists the instrument per the
	// admission convention.
	Add(ctx context.Context, caller authz.Principal, instrument string, info Info) error

	// Get returns the registered info for an instrument.
	Get(ctx context.Context, instrument string) (Info, error)

	// Accepted reports whether the instrument may be used for billing,
	// i.e. it is registered with a non-zero cost value.
	Accepted(ctx context.Context, instrument string) bool
}

type registry struct {
	store  Store
	auth   authz.Authorizer
	events event.Broadcaster
}

// Option configures a Registry instance.
type Option func(*registry)

// WithBroadcaster attaches an event broadcaster. Without one, events are
// silently skipped.
func WithBroadcaster(b event.Broadcaster) Option {
	return func(r *registry) {
		if b != nil {
			r.events = b
		}
	}
}

// NewRegistry creates a currency registry. Panics if store or auth is nil to
// fail fast during initialization.
func NewRegistry(store Store, auth authz.Authorizer, opts ...Option) Registry {
	if store == nil {
		panic("currency: Store is required")
	}
	if auth == nil {
		panic("currency: Authorizer is required")
	}

	r := &registry{store: store, auth: auth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *registry) Add(ctx context.Context, caller authz.Principal, instrument string, info Info) error {
	if instrument == "" {
		return ErrEmptyInstrument
	}

	if err := r.auth.Require(ctx, caller, authz.RoleAdmin, authz.RoleDefaultAdmin); err != nil {
		return err
	}

	if err := r.store.Save(ctx, instrument, info); err != nil {
		return fmt.Errorf("failed to save instrument %s: %w", instrument, err)
	}

	if r.events != nil {
		e := event.New(event.TypeCurrencyAdded)
		e.Instrument = instrument
		e.CostValue = info.CostValue
		_ = r.events.Broadcast(ctx, e)
	}

	return nil
}

func (r *registry) Get(ctx context.Context, instrument string) (Info, error) {
	return r.store.Get(ctx, instrument)
}

func (r *registry) Accepted(ctx context.Context, instrument string) bool {
	info, err := r.store.Get(ctx, instrument)
	if err != nil {
		// Unregistered and unreadable both mean "not accepted".
		return false
	}
	return info.CostValue != 0
}

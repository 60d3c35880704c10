package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LarryRage/blockbiller/pkg/authz"
	"github.com/LarryRage/blockbiller/pkg/currency"
	"github.com/LarryRage/blockbiller/pkg/event"
)

// Catalog is the public interface of the plan catalog.
type Catalog interface {
	// Create registers a new plan owned by the requesting principal.
	// Fails with ErrTokenNotAccepted, ErrDurationTooShort, ErrZeroPrice or
	// ErrPlanAlreadyExists; no state changes on failure.
	Create(ctx context.Context, owner authz.Principal, planID string, price int64, duration time.Duration, instrument string) (Plan, error)

	// Get returns a plan by identifier.
	Get(ctx context.Context, planID string) (Plan, error)

	// Balance returns the accrued balance of a plan, 0 if the plan does not
	// exist.
	Balance(ctx context.Context, planID string) int64
}

type service struct {
	store      Store
	currencies currency.Registry
	events     event.Broadcaster
	now        func() time.Time
}

// Option configures a Catalog instance.
type Option func(*service)

// WithBroadcaster attaches an event broadcaster for SubscriptionCreated events.
func WithBroadcaster(b event.Broadcaster) Option {
	return func(s *service) {
		if b != nil {
			s.events = b
		}
	}
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a plan catalog. Panics if store or currencies is nil to fail
// fast during initialization.
func New(store Store, currencies currency.Registry, opts ...Option) Catalog {
	if store == nil {
		panic("catalog: Store is required")
	}
	if currencies == nil {
		panic("catalog: currency.Registry is required")
	}

	s := &service{
		store:      store,
		currencies: currencies,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, owner authz.Principal, planID string, price int64, duration time.Duration, instrument string) (Plan, error) {
	if planID == "" {
		return Plan{}, ErrEmptyPlanID
	}
	if !s.currencies.Accepted(ctx, instrument) {
		return Plan{}, ErrTokenNotAccepted
	}
	if duration < MinDuration {
		return Plan{}, errors.Join(ErrDurationTooShort,
			fmt.Errorf("got %s, minimum is %s", duration, MinDuration))
	}
	if price <= 0 {
		return Plan{}, ErrZeroPrice
	}

	// Plan identifiers are write-once.
	if _, err := s.store.Get(ctx, planID); err == nil {
		return Plan{}, ErrPlanAlreadyExists
	} else if !errors.Is(err, ErrPlanNotFound) {
		return Plan{}, err
	}

	plan := Plan{
		ID:         planID,
		Price:      price,
		Duration:   duration,
		Balance:    0,
		Owner:      owner,
		Instrument: instrument,
		CreatedAt:  s.now(),
	}

	if err := s.store.Save(ctx, plan); err != nil {
		return Plan{}, fmt.Errorf("failed to save plan %s: %w", planID, err)
	}

	if s.events != nil {
		e := event.New(event.TypeSubscriptionCreated)
		e.PlanID = planID
		e.Amount = price
		e.Duration = int64(duration / time.Second)
		e.Instrument = instrument
		_ = s.events.Broadcast(ctx, e)
	}

	return plan, nil
}

func (s *service) Get(ctx context.Context, planID string) (Plan, error) {
	return s.store.Get(ctx, planID)
}

func (s *service) Balance(ctx context.Context, planID string) int64 {
	plan, err := s.store.Get(ctx, planID)
	if err != nil {
		return 0
	}
	return plan.Balance
}

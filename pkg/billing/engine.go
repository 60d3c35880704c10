package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/LarryRage/blockbiller/pkg/authz"
	"github.com/LarryRage/blockbiller/pkg/catalog"
	"github.com/LarryRage/blockbiller/pkg/event"
	"github.com/LarryRage/blockbiller/pkg/sender"
	"github.com/LarryRage/blockbiller/pkg/subscriber"
)

// MaxBps is the fixed fee-rate denominator: 10000 basis points = 100%.
const MaxBps int64 = 10000

// Receipt summarizes a completed withdrawal.
type Receipt struct {
	PlanID    string
	Fee       int64
	Payout    int64
	Recipient authz.Principal
	Owner     authz.Principal
}

// Engine is the public interface of the billing state machine.
type Engine interface {
	// Subscribe enrolls subscriberID in planID, debiting the plan price from
	// the effective principal. Fails with ErrAlreadySubscribed if the
	// subscriber is enrolled, or ErrTransferFailed with no state change if
	// the payment fails.
	Subscribe(ctx context.Context, req sender.Request, planID, subscriberID string) (subscriber.Subscriber, error)

	// Renew extends an elapsed subscription by one plan duration, debiting
	// the subscriber's controlling account (not necessarily the caller, so
	// admins can renew on a subscriber's behalf).
	Renew(ctx context.Context, req sender.Request, subscriberID, planID string) (subscriber.Subscriber, error)

	// Cancel removes the enrollment record. Only the controlling account or
	// an admin may cancel. Cancelling an absent record is not blocked: it
	// emits a Cancel event with an empty plan id.
	Cancel(ctx context.Context, req sender.Request, subscriberID string) error

	// Withdraw pays out a plan's accrued balance to its owner, minus the
	// platform fee. Only the owner or an admin may withdraw.
	Withdraw(ctx context.Context, req sender.Request, planID string) (Receipt, error)
}

type engine struct {
	plans    catalog.Store
	subs     subscriber.Store
	transfer Transferrer
	fees     FeeProvider
	resolver sender.Resolver
	auth     authz.Authorizer
	custody  authz.Principal

	events event.Broadcaster
	log    *slog.Logger
	now    func() time.Time

	// mu serializes all operations: the ledger model is a single atomic
	// transaction stream, no interleaving.
	mu sync.Mutex
}

// Option configures an Engine instance.
type Option func(*engine)

// WithBroadcaster attaches an event broadcaster. Without one, events are
// silently skipped.
func WithBroadcaster(b event.Broadcaster) Option {
	return func(e *engine) {
		if b != nil {
			e.events = b
		}
	}
}

// WithLogger overrides the default slog logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates the billing engine. Panics if any required dependency is
// nil to fail fast during initialization. The custody principal is the
// account holding funds between subscription payments and withdrawals.
func NewEngine(
	plans catalog.Store,
	subs subscriber.Store,
	transfer Transferrer,
	fees FeeProvider,
	resolver sender.Resolver,
	auth authz.Authorizer,
	custody authz.Principal,
	opts ...Option,
) Engine {
	if plans == nil {
		panic("billing: catalog.Store is required")
	}
	if subs == nil {
		panic("billing: subscriber.Store is required")
	}
	if transfer == nil {
		panic("billing: Transferrer is required")
	}
	if fees == nil {
		panic("billing: FeeProvider is required")
	}
	if resolver == nil {
		panic("billing: sender.Resolver is required")
	}
	if auth == nil {
		panic("billing: authz.Authorizer is required")
	}
	if custody == "" {
		panic("billing: custody principal is required")
	}

	e := &engine{
		plans:    plans,
		subs:     subs,
		transfer: transfer,
		fees:     fees,
		resolver: resolver,
		auth:     auth,
		custody:  custody,
		log:      slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *engine) Subscribe(ctx context.Context, req sender.Request, planID, subscriberID string) (subscriber.Subscriber, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	principal, err := e.resolver.Resolve(ctx, req)
	if err != nil {
		return subscriber.Subscriber{}, err
	}

	existing, err := e.subs.Get(ctx, subscriberID)
	if err != nil && !errors.Is(err, subscriber.ErrSubscriberNotFound) {
		return subscriber.Subscriber{}, err
	}
	if existing.Subscribed() {
		return subscriber.Subscriber{}, ErrAlreadySubscribed
	}

	plan, err := e.plans.Get(ctx, planID)
	if err != nil {
		return subscriber.Subscriber{}, err
	}

	// Payment first: the engine's own state is untouched until the external
	// transfer has fully succeeded.
	if err := e.transfer.Transfer(ctx, plan.Instrument, principal, e.custody, plan.Price); err != nil {
		return subscriber.Subscriber{}, errors.Join(ErrTransferFailed, err)
	}

	plan.Balance += plan.Price
	if err := e.plans.Save(ctx, plan); err != nil {
		return subscriber.Subscriber{}, fmt.Errorf("failed to credit plan %s: %w", planID, err)
	}

	sub := subscriber.Subscriber{
		ID:        subscriberID,
		PlanID:    planID,
		Account:   principal,
		ExpiresAt: plan.ExpiryFrom(e.now()),
	}
	if err := e.subs.Save(ctx, sub); err != nil {
		return subscriber.Subscriber{}, fmt.Errorf("failed to save subscriber %s: %w", subscriberID, err)
	}

	e.emit(ctx, func(ev *event.Event) {
		ev.Type = event.TypeSubscribe
		ev.SubscriberID = subscriberID
		ev.PlanID = planID
		ev.Amount = plan.Price
		ev.Account = principal
	})

	e.log.InfoContext(ctx, "subscriber enrolled",
		"subscriber_id", subscriberID, "plan_id", planID, "amount", plan.Price)

	return sub, nil
}

func (e *engine) Renew(ctx context.Context, req sender.Request, subscriberID, planID string) (subscriber.Subscriber, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	principal, err := e.resolver.Resolve(ctx, req)
	if err != nil {
		return subscriber.Subscriber{}, err
	}

	// An absent record behaves as a zero-valued one: the empty account never
	// matches a caller, so only admins get past authorization.
	sub, err := e.subs.Get(ctx, subscriberID)
	if err != nil && !errors.Is(err, subscriber.ErrSubscriberNotFound) {
		return subscriber.Subscriber{}, err
	}

	if err := e.authorizeAccount(ctx, principal, sub.Account); err != nil {
		return subscriber.Subscriber{}, err
	}

	now := e.now()
	if !sub.RenewableAt(now) {
		return subscriber.Subscriber{}, ErrNotReadyToRenew
	}
	if sub.PlanID != planID {
		return subscriber.Subscriber{}, ErrPlanMismatch
	}

	plan, err := e.plans.Get(ctx, planID)
	if err != nil {
		return subscriber.Subscriber{}, err
	}

	// The stored controlling account pays, not the caller.
	if err := e.transfer.Transfer(ctx, plan.Instrument, sub.Account, e.custody, plan.Price); err != nil {
		return subscriber.Subscriber{}, errors.Join(ErrTransferFailed, err)
	}

	plan.Balance += plan.Price
	if err := e.plans.Save(ctx, plan); err != nil {
		return subscriber.Subscriber{}, fmt.Errorf("failed to credit plan %s: %w", planID, err)
	}

	sub.ExpiresAt = plan.ExpiryFrom(now)
	if err := e.subs.Save(ctx, sub); err != nil {
		return subscriber.Subscriber{}, fmt.Errorf("failed to save subscriber %s: %w", subscriberID, err)
	}

	e.emit(ctx, func(ev *event.Event) {
		ev.Type = event.TypeRenew
		ev.SubscriberID = subscriberID
		ev.PlanID = planID
		ev.Account = principal
		ev.ExpiresAt = sub.ExpiresAt
		ev.Amount = plan.Price
	})

	e.log.InfoContext(ctx, "subscription renewed",
		"subscriber_id", subscriberID, "plan_id", planID, "expires_at", sub.ExpiresAt)

	return sub, nil
}

func (e *engine) Cancel(ctx context.Context, req sender.Request, subscriberID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	principal, err := e.resolver.Resolve(ctx, req)
	if err != nil {
		return err
	}

	sub, err := e.subs.Get(ctx, subscriberID)
	if err != nil && !errors.Is(err, subscriber.ErrSubscriberNotFound) {
		return err
	}

	if err := e.authorizeAccount(ctx, principal, sub.Account); err != nil {
		return err
	}

	// The event must capture the pre-deletion plan id. No precondition
	// blocks cancelling an absent record, so a double cancel emits an event
	// with an empty plan id.
	e.emit(ctx, func(ev *event.Event) {
		ev.Type = event.TypeCancel
		ev.SubscriberID = subscriberID
		ev.PlanID = sub.PlanID
		ev.Account = principal
	})

	if err := e.subs.Delete(ctx, subscriberID); err != nil {
		return fmt.Errorf("failed to delete subscriber %s: %w", subscriberID, err)
	}

	e.log.InfoContext(ctx, "subscription cancelled",
		"subscriber_id", subscriberID, "plan_id", sub.PlanID)

	return nil
}

func (e *engine) Withdraw(ctx context.Context, req sender.Request, planID string) (Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	principal, err := e.resolver.Resolve(ctx, req)
	if err != nil {
		return Receipt{}, err
	}

	// As with subscribers, an absent plan behaves as a zero-valued record:
	// authorization fails for everyone but admins, who then hit NoBalance.
	plan, err := e.plans.Get(ctx, planID)
	if err != nil && !errors.Is(err, catalog.ErrPlanNotFound) {
		return Receipt{}, err
	}

	if err := e.authorizeAccount(ctx, principal, plan.Owner); err != nil {
		return Receipt{}, err
	}

	if plan.Balance == 0 {
		return Receipt{}, ErrNoBalance
	}

	info, err := e.fees.PlatformFee(ctx)
	if err != nil {
		return Receipt{}, err
	}
	if info.Bps < 0 || info.Bps > MaxBps {
		return Receipt{}, ErrInvalidFeeRate
	}

	balance := plan.Balance
	fee := balance * info.Bps / MaxBps
	payout := balance - fee

	// Reset before paying out. The reset is committed even if a transfer
	// below fails, so a re-submitted withdrawal cannot double-spend.
	plan.Balance = 0
	if err := e.plans.Save(ctx, plan); err != nil {
		return Receipt{}, fmt.Errorf("failed to reset balance of plan %s: %w", planID, err)
	}

	if fee > 0 {
		if err := e.transfer.Transfer(ctx, plan.Instrument, e.custody, info.Recipient, fee); err != nil {
			e.log.ErrorContext(ctx, "fee transfer failed after balance reset",
				"plan_id", planID, "fee", fee, "error", err)
			return Receipt{}, errors.Join(ErrTransferFailed, err)
		}
	}
	if payout > 0 {
		if err := e.transfer.Transfer(ctx, plan.Instrument, e.custody, plan.Owner, payout); err != nil {
			e.log.ErrorContext(ctx, "payout transfer failed after balance reset",
				"plan_id", planID, "payout", payout, "error", err)
			return Receipt{}, errors.Join(ErrTransferFailed, err)
		}
	}

	e.emit(ctx, func(ev *event.Event) {
		ev.Type = event.TypeWithdraw
		ev.PlanID = planID
		ev.Fee = fee
		ev.Payout = payout
	})

	e.log.InfoContext(ctx, "balance withdrawn",
		"plan_id", planID, "fee", fee, "payout", payout)

	return Receipt{
		PlanID:    planID,
		Fee:       fee,
		Payout:    payout,
		Recipient: info.Recipient,
		Owner:     plan.Owner,
	}, nil
}

// authorizeAccount passes when the principal is the record's controlling
// account or holds an admin role.
func (e *engine) authorizeAccount(ctx context.Context, principal, account authz.Principal) error {
	if principal != "" && principal == account {
		return nil
	}
	return e.auth.Require(ctx, principal, authz.RoleAdmin, authz.RoleDefaultAdmin)
}

func (e *engine) emit(ctx context.Context, fill func(*event.Event)) {
	if e.events == nil {
		return
	}
	ev := event.New("")
	fill(&ev)
	_ = e.events.Broadcast(ctx, ev)
}

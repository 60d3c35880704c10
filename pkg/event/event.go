package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

// Type discriminates ledger events.
type Type string

const (
	TypeCurrencyAdded       Type = "currency_added"
	TypeSubscriptionCreated Type = "subscription_created"
	TypeSubscribe           Type = "subscribe"
	TypeRenew               Type = "renew"
	TypeCancel              Type = "cancel"
	TypeWithdraw            Type = "withdraw"
)

// Event is a single ledger event. Only the fields relevant to the event's
// Type are populated; the rest stay at their zero values.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	PlanID       string          `json:"plan_id,omitempty"`
	SubscriberID string          `json:"subscriber_id,omitempty"`
	Instrument   string          `json:"instrument,omitempty"`
	Account      authz.Principal `json:"account,omitempty"`

	Amount    int64 `json:"amount,omitempty"`
	CostValue int64 `json:"cost_value,omitempty"`
	Fee       int64 `json:"fee,omitempty"`
	Payout    int64 `json:"payout,omitempty"`

	// Duration is set on subscription_created events, in seconds.
	Duration int64 `json:"duration,omitempty"`

	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// New returns an Event of the given type stamped with a fresh ID and the
// current time. Callers fill in the type-specific fields.
func New(t Type) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
	}
}

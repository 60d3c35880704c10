package subscriber

import (
	"errors"
	"time"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

// ErrSubscriberNotFound is returned when no enrollment record exists.
var ErrSubscriberNotFound = errors.New("subscriber: not found")

// Subscriber is an enrollment record. PlanID references a catalog plan by
// identifier only; there is no referential-integrity enforcement.
type Subscriber struct {
	ID        string
	PlanID    string
	Account   authz.Principal
	ExpiresAt time.Time
}

// Subscribed reports whether the record represents an active enrollment.
// A zero ExpiresAt means "not subscribed".
func (s Subscriber) Subscribed() bool {
	return !s.ExpiresAt.IsZero()
}

// RenewableAt reports whether the current term has elapsed at the given
// time. Renewal is only permitted once it has; there is no early renewal.
func (s Subscriber) RenewableAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

package subscriber

import "context"

// Store defines the interface for enrollment persistence. The subscriber
// identifier is the primary key.
type Store interface {
	// Get retrieves an enrollment record.
	// Returns ErrSubscriberNotFound if none exists.
	Get(ctx context.Context, subscriberID string) (Subscriber, error)

	// Save creates or updates an enrollment record.
	Save(ctx context.Context, sub Subscriber) error

	// Delete removes an enrollment record. Deleting an absent record is not
	// an error.
	Delete(ctx context.Context, subscriberID string) error
}

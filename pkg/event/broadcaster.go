package event

import (
	"context"
	"sync"
)

// Subscriber receives events from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber interface {
	// Receive returns a channel for receiving broadcast events. The context
	// parameter lets adapter implementations (e.g. Redis) respect
	// cancellation during blocking reads; the in-memory implementation
	// accepts it for interface consistency.
	Receive(ctx context.Context) <-chan Event

	// Close closes the subscriber and releases resources. After Close, the
	// receive channel is closed and no more events arrive. Close is
	// idempotent.
	Close() error
}

// Broadcaster fans ledger events out to subscribers. Implementations must
// handle slow consumers by dropping rather than blocking, since the billing
// engine publishes from inside its serialized operation window.
type Broadcaster interface {
	// Subscribe creates a subscriber that receives all subsequent events.
	// Cancelling the context tears the subscription down.
	Subscribe(ctx context.Context) Subscriber

	// Broadcast sends an event to all active subscribers. Events may be
	// dropped for slow consumers.
	Broadcast(ctx context.Context, e Event) error

	// Close shuts down the broadcaster and closes all subscribers.
	Close() error
}

type subscriber struct {
	ch     chan Event
	closed bool
	mu     sync.RWMutex
}

func newSubscriber(bufferSize int) *subscriber {
	return &subscriber{ch: make(chan Event, bufferSize)}
}

func (s *subscriber) Receive(ctx context.Context) <-chan Event {
	return s.ch
}

func (s *subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *subscriber) send(e Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- e:
		return true
	default:
		return false
	}
}

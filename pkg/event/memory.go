package event

import (
	"context"
	"sync"
)

// MemoryBroadcaster is an in-process Broadcaster. It drops events for slow
// consumers rather than blocking the publishing ledger operation. All methods
// are safe for concurrent use.
type MemoryBroadcaster struct {
	subscribers map[*subscriber]struct{}
	bufferSize  int
	closed      bool
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

// NewMemoryBroadcaster creates an in-memory broadcaster. The bufferSize sets
// each subscriber's channel capacity; a minimum of 1 is enforced so sends
// stay non-blocking.
func NewMemoryBroadcaster(bufferSize int) *MemoryBroadcaster {
	return &MemoryBroadcaster{
		subscribers: make(map[*subscriber]struct{}),
		bufferSize:  max(bufferSize, 1),
	}
}

// Subscribe creates a subscriber that receives all subsequent events. The
// subscription is cleaned up when the context is cancelled. If the
// broadcaster is already closed, a closed subscriber is returned.
func (b *MemoryBroadcaster) Subscribe(ctx context.Context) Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		sub := newSubscriber(b.bufferSize)
		_ = sub.Close()
		return sub
	}

	sub := newSubscriber(b.bufferSize)
	b.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			<-ctx.Done()
			b.unsubscribe(sub)
		}()
	}

	return sub
}

// Broadcast sends an event to all active subscribers. If a subscriber's
// buffer is full the event is dropped for it and the subscriber is removed.
// Returns nil even when some subscribers missed the event.
func (b *MemoryBroadcaster) Broadcast(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for sub := range b.subscribers {
		if !sub.send(e) {
			// Remove slow/closed subscribers asynchronously to avoid
			// write-lock contention during the broadcast.
			go b.unsubscribe(sub)
		}
	}

	return nil
}

// Close shuts down the broadcaster and closes all subscribers. Safe to call
// multiple times.
func (b *MemoryBroadcaster) Close() error {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()
		return nil
	}

	b.closed = true

	for sub := range b.subscribers {
		_ = sub.Close()
	}

	clear(b.subscribers)
	b.mu.Unlock()

	// Wait for cleanup goroutines so Close does not race async unsubscribes.
	b.cleanupWg.Wait()

	return nil
}

func (b *MemoryBroadcaster) unsubscribe(sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, sub)
	_ = sub.Close()
}

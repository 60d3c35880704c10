package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis pub/sub channel used when none is configured.
const DefaultChannel = "blockbiller:events"

var (
	// ErrBroadcasterClosed is returned when publishing on a closed broadcaster.
	ErrBroadcasterClosed = errors.New("event: broadcaster is closed")

	// ErrPublishFailed wraps Redis publish failures.
	ErrPublishFailed = errors.New("event: failed to publish event")
)

// RedisBroadcaster relays ledger events over Redis pub/sub so consumers in
// other processes can observe them. Events are JSON-encoded on the wire.
// Delivery follows Redis pub/sub semantics: at-most-once, no replay.
type RedisBroadcaster struct {
	client  redis.UniversalClient
	channel string

	mu     sync.RWMutex
	closed bool
	subWg  sync.WaitGroup
}

// NewRedisBroadcaster creates a broadcaster publishing to the given channel.
// An empty channel falls back to DefaultChannel. The client is borrowed, not
// owned: Close does not close it.
func NewRedisBroadcaster(client redis.UniversalClient, channel string) *RedisBroadcaster {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroadcaster{
		client:  client,
		channel: channel,
	}
}

// Broadcast JSON-encodes the event and publishes it to the channel.
func (b *RedisBroadcaster) Broadcast(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBroadcasterClosed
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrPublishFailed, err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}

	return nil
}

// Subscribe opens a Redis subscription on the channel and pumps decoded
// events into the returned subscriber. Undecodable payloads are skipped.
func (b *RedisBroadcaster) Subscribe(ctx context.Context) Subscriber {
	sub := newSubscriber(64)

	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		_ = sub.Close()
		return sub
	}

	pubsub := b.client.Subscribe(ctx, b.channel)

	b.subWg.Add(1)
	go func() {
		defer b.subWg.Done()
		defer func() { _ = sub.Close() }()
		defer func() { _ = pubsub.Close() }()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					continue
				}
				// Drop on full buffer, same contract as the memory impl.
				sub.send(e)
			}
		}
	}()

	return sub
}

// Close marks the broadcaster closed. In-flight subscriptions terminate when
// their contexts are cancelled; Close does not tear them down forcibly since
// the Redis client is shared.
func (b *RedisBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	return nil
}

package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarryRage/blockbiller/pkg/event"
)

func TestNew(t *testing.T) {
	t.Parallel()

	e := event.New(event.TypeSubscribe)
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, event.TypeSubscribe, e.Type)
	assert.False(t, e.OccurredAt.IsZero())

	other := event.New(event.TypeSubscribe)
	assert.NotEqual(t, e.ID, other.ID)
}

func TestMemoryBroadcaster(t *testing.T) {
	t.Parallel()

	t.Run("fans out to all subscribers", func(t *testing.T) {
		t.Parallel()

		b := event.NewMemoryBroadcaster(4)
		t.Cleanup(func() { _ = b.Close() })

		ctx := context.Background()
		first := b.Subscribe(ctx)
		second := b.Subscribe(ctx)

		e := event.New(event.TypeRenew)
		e.PlanID = "gold"
		require.NoError(t, b.Broadcast(ctx, e))

		for _, sub := range []event.Subscriber{first, second} {
			select {
			case got := <-sub.Receive(ctx):
				assert.Equal(t, e.ID, got.ID)
				assert.Equal(t, "gold", got.PlanID)
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for event")
			}
		}
	})

	t.Run("subscriber sees only subsequent events", func(t *testing.T) {
		t.Parallel()

		b := event.NewMemoryBroadcaster(4)
		t.Cleanup(func() { _ = b.Close() })

		ctx := context.Background()
		require.NoError(t, b.Broadcast(ctx, event.New(event.TypeCancel)))

		sub := b.Subscribe(ctx)
		later := event.New(event.TypeWithdraw)
		require.NoError(t, b.Broadcast(ctx, later))

		got := <-sub.Receive(ctx)
		assert.Equal(t, later.ID, got.ID)
	})

	t.Run("slow subscriber is dropped, not blocked", func(t *testing.T) {
		t.Parallel()

		b := event.NewMemoryBroadcaster(1)
		t.Cleanup(func() { _ = b.Close() })

		ctx := context.Background()
		sub := b.Subscribe(ctx)

		// Fill the buffer and then overflow it; Broadcast must not block.
		require.NoError(t, b.Broadcast(ctx, event.New(event.TypeSubscribe)))
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = b.Broadcast(ctx, event.New(event.TypeSubscribe))
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("broadcast blocked on a full subscriber")
		}

		// The buffered event is still deliverable.
		got, ok := <-sub.Receive(ctx)
		require.True(t, ok)
		assert.Equal(t, event.TypeSubscribe, got.Type)
	})

	t.Run("context cancellation tears the subscription down", func(t *testing.T) {
		t.Parallel()

		b := event.NewMemoryBroadcaster(4)
		t.Cleanup(func() { _ = b.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		sub := b.Subscribe(ctx)
		cancel()

		// The channel closes once the cleanup goroutine runs.
		require.Eventually(t, func() bool {
			select {
			case _, ok := <-sub.Receive(context.Background()):
				return !ok
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("close shuts down all subscribers", func(t *testing.T) {
		t.Parallel()

		b := event.NewMemoryBroadcaster(4)
		ctx := context.Background()
		sub := b.Subscribe(ctx)

		require.NoError(t, b.Close())
		require.NoError(t, b.Close())

		_, ok := <-sub.Receive(ctx)
		assert.False(t, ok)

		// Broadcasting and subscribing after close are no-ops.
		assert.NoError(t, b.Broadcast(ctx, event.New(event.TypeCancel)))
		late := b.Subscribe(ctx)
		_, ok = <-late.Receive(ctx)
		assert.False(t, ok)
	})

	t.Run("subscriber close is idempotent", func(t *testing.T) {
		t.Parallel()

		b := event.NewMemoryBroadcaster(4)
		t.Cleanup(func() { _ = b.Close() })

		sub := b.Subscribe(context.Background())
		assert.NoError(t, sub.Close())
		assert.NoError(t, sub.Close())
	})
}

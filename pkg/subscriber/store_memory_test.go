package subscriber_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarryRage/blockbiller/pkg/subscriber"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := subscriber.NewMemoryStore()

	t.Run("get of absent record fails", func(t *testing.T) {
		_, err := store.Get(ctx, "alice")
		assert.ErrorIs(t, err, subscriber.ErrSubscriberNotFound)
	})

	t.Run("save then get round-trips", func(t *testing.T) {
		sub := subscriber.Subscriber{
			ID:        "alice",
			PlanID:    "gold",
			Account:   "0xalice",
			ExpiresAt: time.Now().UTC().Add(30 * 24 * time.Hour),
		}
		require.NoError(t, store.Save(ctx, sub))

		got, err := store.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, sub, got)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "alice"))

		_, err := store.Get(ctx, "alice")
		assert.ErrorIs(t, err, subscriber.ErrSubscriberNotFound)
	})

	t.Run("delete of absent record is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "nobody"))
	})
}

func TestSubscriber_Subscribed(t *testing.T) {
	t.Parallel()

	assert.False(t, subscriber.Subscriber{}.Subscribed())
	assert.True(t, subscriber.Subscriber{ExpiresAt: time.Now()}.Subscribed())
}

func TestSubscriber_RenewableAt(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("future expiration is not renewable", func(t *testing.T) {
		t.Parallel()
		sub := subscriber.Subscriber{ExpiresAt: now.Add(time.Hour)}
		assert.False(t, sub.RenewableAt(now))
	})

	t.Run("elapsed expiration is renewable", func(t *testing.T) {
		t.Parallel()
		sub := subscriber.Subscriber{ExpiresAt: now.Add(-time.Hour)}
		assert.True(t, sub.RenewableAt(now))
	})

	t.Run("exact expiration instant is renewable", func(t *testing.T) {
		t.Parallel()
		sub := subscriber.Subscriber{ExpiresAt: now}
		assert.True(t, sub.RenewableAt(now))
	})
}

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarryRage/blockbiller/pkg/authz"
	"github.com/LarryRage/blockbiller/pkg/catalog"
	"github.com/LarryRage/blockbiller/pkg/currency"
	"github.com/LarryRage/blockbiller/pkg/event"
)

func newTestCatalog(t *testing.T, opts ...catalog.Option) catalog.Catalog {
	t.Helper()

	ctx := context.Background()
	oracle, err := authz.NewOracle(ctx, authz.NewInMemGrantSource(map[authz.Principal][]authz.Role{
		"0xadmin": {authz.RoleAdmin},
	}))
	require.NoError(t, err)

	currencies := currency.NewRegistry(currency.NewMemoryStore(), oracle)
	require.NoError(t, currencies.Add(ctx, "0xadmin", "USDT", currency.Info{PayToken: "0xusdt", CostValue: 1}))
	require.NoError(t, currencies.Add(ctx, "0xadmin", "JUNK", currency.Info{CostValue: 0}))

	return catalog.New(catalog.NewMemoryStore(), currencies, opts...)
}

func TestCatalog_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates a valid plan", func(t *testing.T) {
		t.Parallel()
		cat := newTestCatalog(t)

		plan, err := cat.Create(ctx, "0xowner", "gold", 100, catalog.MinDuration, "USDT")
		require.NoError(t, err)

		assert.Equal(t, "gold", plan.ID)
		assert.Equal(t, int64(100), plan.Price)
		assert.Equal(t, catalog.MinDuration, plan.Duration)
		assert.Zero(t, plan.Balance)
		assert.Equal(t, authz.Principal("0xowner"), plan.Owner)
		assert.Equal(t, "USDT", plan.Instrument)
	})

	t.Run("rejects unaccepted instrument", func(t *testing.T) {
		t.Parallel()
		cat := newTestCatalog(t)

		_, err := cat.Create(ctx, "0xowner", "gold", 100, catalog.MinDuration, "JUNK")
		assert.ErrorIs(t, err, catalog.ErrTokenNotAccepted)

		_, err = cat.Create(ctx, "0xowner", "gold", 100, catalog.MinDuration, "WAT")
		assert.ErrorIs(t, err, catalog.ErrTokenNotAccepted)
	})

	t.Run("rejects duration below 30 days", func(t *testing.T) {
		t.Parallel()
		cat := newTestCatalog(t)

		_, err := cat.Create(ctx, "0xowner", "gold", 100, catalog.MinDuration-time.Second, "USDT")
		assert.ErrorIs(t, err, catalog.ErrDurationTooShort)
	})

	t.Run("rejects zero price", func(t *testing.T) {
		t.Parallel()
		cat := newTestCatalog(t)

		_, err := cat.Create(ctx, "0xowner", "gold", 0, catalog.MinDuration, "USDT")
		assert.ErrorIs(t, err, catalog.ErrZeroPrice)
	})

	t.Run("rejects empty plan id", func(t *testing.T) {
		t.Parallel()
		cat := newTestCatalog(t)

		_, err := cat.Create(ctx, "0xowner", "", 100, catalog.MinDuration, "USDT")
		assert.ErrorIs(t, err, catalog.ErrEmptyPlanID)
	})

	t.Run("plan ids are write-once", func(t *testing.T) {
		t.Parallel()
		cat := newTestCatalog(t)

		_, err := cat.Create(ctx, "0xowner", "gold", 100, catalog.MinDuration, "USDT")
		require.NoError(t, err)

		_, err = cat.Create(ctx, "0xother", "gold", 200, catalog.MinDuration, "USDT")
		assert.ErrorIs(t, err, catalog.ErrPlanAlreadyExists)

		// The original plan is untouched.
		plan, err := cat.Get(ctx, "gold")
		require.NoError(t, err)
		assert.Equal(t, int64(100), plan.Price)
		assert.Equal(t, authz.Principal("0xowner"), plan.Owner)
	})

	t.Run("emits a subscription_created event", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		events := event.NewMemoryBroadcaster(4)
		t.Cleanup(func() { _ = events.Close() })
		sub := events.Subscribe(ctx)

		cat := newTestCatalog(t, catalog.WithBroadcaster(events))

		_, err := cat.Create(ctx, "0xowner", "gold", 100, catalog.MinDuration, "USDT")
		require.NoError(t, err)

		got := <-sub.Receive(ctx)
		assert.Equal(t, event.TypeSubscriptionCreated, got.Type)
		assert.Equal(t, "gold", got.PlanID)
		assert.Equal(t, int64(100), got.Amount)
		assert.Equal(t, int64(2592000), got.Duration)
		assert.Equal(t, "USDT", got.Instrument)
	})
}

func TestCatalog_Balance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cat := newTestCatalog(t)

	t.Run("absent plan reads as zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, cat.Balance(ctx, "nope"))
	})

	t.Run("fresh plan starts at zero", func(t *testing.T) {
		t.Parallel()

		_, err := cat.Create(ctx, "0xowner", "silver", 50, catalog.MinDuration, "USDT")
		require.NoError(t, err)
		assert.Zero(t, cat.Balance(ctx, "silver"))
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := catalog.NewMemoryStore()

	_, err := store.Get(ctx, "gold")
	assert.ErrorIs(t, err, catalog.ErrPlanNotFound)

	plan := catalog.Plan{ID: "gold", Price: 100, Duration: catalog.MinDuration, Owner: "0xowner", Instrument: "USDT"}
	require.NoError(t, store.Save(ctx, plan))

	got, err := store.Get(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, plan, got)
}

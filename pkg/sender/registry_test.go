package sender_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarryRage/blockbiller/pkg/authz"
	"github.com/LarryRage/blockbiller/pkg/sender"
)

func newTestRegistry(t *testing.T) *sender.Registry {
	t.Helper()

	oracle, err := authz.NewOracle(context.Background(), authz.NewInMemGrantSource(map[authz.Principal][]authz.Role{
		"0xdeployer": {authz.RoleDefaultAdmin, authz.RoleAdmin},
		"0xadmin":    {authz.RoleAdmin},
	}))
	require.NoError(t, err)

	return sender.NewRegistry(oracle, "0xdeployer")
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("plain caller resolves to itself", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		principal, err := reg.Resolve(ctx, sender.Request{Caller: "0xalice"})
		require.NoError(t, err)
		assert.Equal(t, authz.Principal("0xalice"), principal)
	})

	t.Run("forwarded value from a non-relay is ignored", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		principal, err := reg.Resolve(ctx, sender.Request{Caller: "0xalice", ForwardedFor: "0xbob"})
		require.NoError(t, err)
		assert.Equal(t, authz.Principal("0xalice"), principal)
	})

	t.Run("trusted relay resolves to the forwarded principal", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		require.NoError(t, reg.AddRelay(ctx, "0xadmin", "0xrelay"))

		principal, err := reg.Resolve(ctx, sender.Request{Caller: "0xrelay", ForwardedFor: "0xbob"})
		require.NoError(t, err)
		assert.Equal(t, authz.Principal("0xbob"), principal)
	})

	t.Run("relay without forwarded value resolves to itself", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		require.NoError(t, reg.AddRelay(ctx, "0xadmin", "0xrelay"))

		principal, err := reg.Resolve(ctx, sender.Request{Caller: "0xrelay"})
		require.NoError(t, err)
		assert.Equal(t, authz.Principal("0xrelay"), principal)
	})

	t.Run("empty caller fails", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		_, err := reg.Resolve(ctx, sender.Request{})
		assert.ErrorIs(t, err, sender.ErrEmptyCaller)
	})
}

func TestRegistry_AddRelay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("admin registers a relay", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		require.NoError(t, reg.AddRelay(ctx, "0xadmin", "0xrelay"))
		assert.True(t, reg.IsRelay("0xrelay"))
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		err := reg.AddRelay(ctx, "0xalice", "0xrelay")
		assert.ErrorIs(t, err, authz.ErrNotAuthorized)
		assert.False(t, reg.IsRelay("0xrelay"))
	})

	t.Run("empty relay is rejected", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		assert.ErrorIs(t, reg.AddRelay(ctx, "0xadmin", ""), sender.ErrEmptyCaller)
	})
}

func TestRegistry_SetDeployer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("deployer with admin role reassigns the slot", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		require.NoError(t, reg.SetDeployer(ctx, "0xdeployer", "0xnext"))
		assert.Equal(t, authz.Principal("0xnext"), reg.Deployer())
	})

	t.Run("admin who is not the deployer is rejected", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		err := reg.SetDeployer(ctx, "0xadmin", "0xnext")
		assert.ErrorIs(t, err, sender.ErrNotDeployer)
		assert.Equal(t, authz.Principal("0xdeployer"), reg.Deployer())
	})

	t.Run("deployer without admin role is rejected", func(t *testing.T) {
		t.Parallel()

		oracle, err := authz.NewOracle(ctx, authz.NewInMemGrantSource(nil))
		require.NoError(t, err)
		reg := sender.NewRegistry(oracle, "0xdeployer")

		err = reg.SetDeployer(ctx, "0xdeployer", "0xnext")
		assert.ErrorIs(t, err, authz.ErrNotAuthorized)
	})
}

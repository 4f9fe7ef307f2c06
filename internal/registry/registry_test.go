package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillroom/consigncart/internal/cart"
	"github.com/tillroom/consigncart/internal/cartstore"
	"github.com/tillroom/consigncart/internal/policy"
	"github.com/tillroom/consigncart/internal/storage"
	"github.com/tillroom/consigncart/internal/testutil"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	adapter := storage.NewAdapter(storage.NewMemoryBackend(), nil)
	return New(adapter, policy.FixedRate(0.08),
		WithStoreOptions(
			cartstore.WithClock(testutil.NewScenarioClock()),
			cartstore.WithTokenGenerator(testutil.NewFixedTokenGenerator()),
		),
	)
}

func TestCurrentCart_BeforeSetCurrentTenant(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CurrentCart()
	require.Error(t, err)
	assert.True(t, IsNoActiveTenant(err))
}

func TestSetCurrentTenant_EmptyIDCreatesNoStore(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.SetCurrentTenant(ctx, tt.id)

			_, err := r.CurrentCart()
			assert.True(t, IsNoActiveTenant(err))
			assert.Empty(t, r.stores, "empty tenant id must not create a store")
		})
	}
}

func TestSetCurrentTenant_EmptyIDClearsCurrent(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	r.SetCurrentTenant(ctx, "acme")
	r.SetCurrentTenant(ctx, "")

	assert.Equal(t, "", r.CurrentTenant())
	_, err := r.CurrentCart()
	assert.True(t, IsNoActiveTenant(err))
}

func TestSetCurrentTenant_CreatesStore(t *testing.T) {
	r := newTestRegistry(t)
	r.SetCurrentTenant(context.Background(), "acme")

	s, err := r.CurrentCart()
	require.NoError(t, err)
	assert.Equal(t, "acme", s.TenantID())
	assert.Equal(t, "acme", r.CurrentTenant())
}

func TestSetCurrentTenant_SwitchKeepsBothStores(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	r.SetCurrentTenant(ctx, "acme")
	first, err := r.CurrentCart()
	require.NoError(t, err)
	require.True(t, first.Add(ctx, cart.Item{ItemID: "sku-1", Price: 5}, 1))

	r.SetCurrentTenant(ctx, "other")
	second, err := r.CurrentCart()
	require.NoError(t, err)
	assert.Empty(t, second.Snapshot().Items, "new tenant starts empty")

	// Switching back returns the same live store, state intact.
	r.SetCurrentTenant(ctx, "acme")
	again, err := r.CurrentCart()
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, again.GetItemQuantity("sku-1"))
}

func TestCartFor_LazilyCreates(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	s := r.CartFor(ctx, "acme")
	require.NotNil(t, s)
	assert.Same(t, s, r.CartFor(ctx, "acme"), "one store per tenant")

	// Explicit addressing must not disturb the current-tenant pointer.
	_, err := r.CurrentCart()
	assert.True(t, IsNoActiveTenant(err))
}

func TestCartFor_TenantsDoNotInterfere(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	acme := r.CartFor(ctx, "acme")
	require.True(t, acme.Add(ctx, cart.Item{ItemID: "sku-1", Price: 5}, 2))

	other := r.CartFor(ctx, "other")
	assert.Empty(t, other.Snapshot().Items)
	assert.Zero(t, other.GetItemQuantity("sku-1"))
}

func TestCartFor_NormalizesTenantID(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	a := r.CartFor(ctx, "acme")
	b := r.CartFor(ctx, "  acme  ")
	assert.Same(t, a, b, "padded tenant ids must map to one store")
}

func TestNewGuestTenant(t *testing.T) {
	r := newTestRegistry(t)

	a := r.NewGuestTenant()
	b := r.NewGuestTenant()
	assert.True(t, strings.HasPrefix(a, "guest-"))
	assert.NotEqual(t, a, b, "guest tenants must be unique")
}

func TestRegistry_AppliesPolicyRates(t *testing.T) {
	adapter := storage.NewAdapter(storage.NewMemoryBackend(), nil)
	r := New(adapter, policy.FixedRate(0.10))
	ctx := context.Background()

	s := r.CartFor(ctx, "acme")
	require.True(t, s.Add(ctx, cart.Item{ItemID: "sku-1", Price: 100.00}, 1))
	assert.Equal(t, 10.00, s.Snapshot().Tax)
}

func TestRegistry_RehydratesPersistedCart(t *testing.T) {
	backend := storage.NewMemoryBackend()
	adapter := storage.NewAdapter(backend, nil)
	ctx := context.Background()

	first := New(adapter, policy.FixedRate(0.08))
	require.True(t, first.CartFor(ctx, "acme").Add(ctx, cart.Item{ItemID: "sku-1", Price: 5}, 3))

	// A second registry over the same backend sees the persisted cart.
	second := New(adapter, policy.FixedRate(0.08))
	snap := second.CartFor(ctx, "acme").Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 3, snap.Items[0].Quantity)
}

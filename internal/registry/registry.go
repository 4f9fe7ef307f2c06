// Package registry owns the set of active cart stores, keyed by tenant
// identifier, plus the "current tenant" pointer for callers that do not
// want to pass a tenant on every call.
//
// The registry is an explicit, injectable handle rather than process-wide
// mutable state, so independent tenant contexts can coexist in one process:
// construct one Registry per execution context and pass it down.
//
// The tenant map is only ever appended to. A tenant's store is created once
// (rehydrated from storage on first access) and lives for the registry's
// lifetime; Clear empties a cart but never removes the tenant's entry.
package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tillroom/consigncart/internal/cart"
	"github.com/tillroom/consigncart/internal/cartstore"
	"github.com/tillroom/consigncart/internal/storage"
)

// RateResolver returns the tax rate to apply for a tenant.
// Implemented by policy.Policy.
type RateResolver interface {
	RateFor(tenantID string) float64
}

// Registry lazily creates and looks up one cart store per tenant.
//
// Not safe for concurrent use; the cart subsystem assumes a single active
// execution context at a time.
type Registry struct {
	adapter *storage.Adapter
	rates   RateResolver
	logger  *slog.Logger

	storeOpts []cartstore.Option
	stores    map[string]*cartstore.Store
	current   string
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithLogger sets the logger handed to every store the registry creates.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithStoreOptions appends options applied to every store the registry
// creates. Tests use this to inject the deterministic clock.
func WithStoreOptions(opts ...cartstore.Option) Option {
	return func(r *Registry) { r.storeOpts = append(r.storeOpts, opts...) }
}

// New creates a registry over the given storage adapter and rate resolver.
func New(adapter *storage.Adapter, rates RateResolver, opts ...Option) *Registry {
	r := &Registry{
		adapter: adapter,
		rates:   rates,
		logger:  slog.Default(),
		stores:  make(map[string]*cartstore.Store),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetCurrentTenant records id as the current tenant, creating its store
// (rehydrated from storage, or empty) if this is the first access.
//
// An id that normalizes to empty clears the current tenant without
// creating a store; an empty key would persist a record under the bare
// "cart_" prefix.
func (r *Registry) SetCurrentTenant(ctx context.Context, id string) {
	id = cart.NormalizeID(id)
	r.current = id
	if id == "" {
		return
	}
	r.storeFor(ctx, id)
}

// CurrentTenant returns the current tenant id, or "" if none is set.
func (r *Registry) CurrentTenant() string {
	return r.current
}

// CurrentCart returns the current tenant's live store.
// Fails with NoActiveTenantError if SetCurrentTenant was never called.
func (r *Registry) CurrentCart() (*cartstore.Store, error) {
	if r.current == "" {
		return nil, &NoActiveTenantError{}
	}
	// The store exists: SetCurrentTenant created it.
	return r.stores[r.current], nil
}

// CartFor returns the store for an explicitly addressed tenant, lazily
// creating it if absent. Used by flows that need a non-current tenant's
// cart, such as a background merge.
func (r *Registry) CartFor(ctx context.Context, id string) *cartstore.Store {
	return r.storeFor(ctx, cart.NormalizeID(id))
}

// NewGuestTenant mints a namespace for an anonymous session. The guest
// cart persists under this id until it is merged into an account cart at
// login; no expiry is applied.
func (r *Registry) NewGuestTenant() string {
	return "guest-" + uuid.Must(uuid.NewV7()).String()
}

// storeFor returns the tenant's store, creating it on first access.
func (r *Registry) storeFor(ctx context.Context, id string) *cartstore.Store {
	if s, ok := r.stores[id]; ok {
		return s
	}

	rate := r.rates.RateFor(id)
	opts := append([]cartstore.Option{cartstore.WithLogger(r.logger)}, r.storeOpts...)
	s := cartstore.New(ctx, id, r.adapter, rate, opts...)
	r.stores[id] = s

	r.logger.Debug("cart store created", "tenant", id, "tax_rate", rate)
	return s
}

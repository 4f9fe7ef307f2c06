package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tillroom/consigncart/internal/cart"
)

// Adapter joins a Backend with the cart JSON codec and the load-recovery
// policy. The cart store talks only to this type; the raw Backend stays
// swappable underneath it.
type Adapter struct {
	backend Backend
	logger  *slog.Logger
}

// NewAdapter wraps a backend. A nil logger falls back to slog.Default().
func NewAdapter(backend Backend, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{backend: backend, logger: logger}
}

// Load returns the persisted cart for tenantID.
//
// Load cannot fail outwardly. A missing record yields an empty cart; a
// corrupt or schema-drifted record is logged and replaced by an empty cart
// rather than propagated. Totals are always recomputed from the item list
// at the given rate - the persisted totals are never trusted, because the
// tax rate or rounding rule may have changed since the record was written.
func (a *Adapter) Load(ctx context.Context, tenantID string, taxRate float64) cart.Cart {
	key := Key(tenantID)

	value, ok, err := a.backend.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cart load failed, substituting empty cart",
			"tenant", tenantID, "error", err)
		return emptyWithTotals(tenantID, taxRate)
	}
	if !ok {
		return emptyWithTotals(tenantID, taxRate)
	}

	var c cart.Cart
	if err := json.Unmarshal(value, &c); err != nil {
		a.logger.Warn("cart record corrupt, substituting empty cart",
			"tenant", tenantID, "error", err)
		return emptyWithTotals(tenantID, taxRate)
	}

	// The record's own tenant field is ignored in favor of the addressed
	// key, so a record copied between keys cannot leak across namespaces.
	c.TenantID = tenantID
	if c.Items == nil {
		c.Items = []cart.Item{}
	}

	cart.ApplyTotals(&c, taxRate)
	return c
}

// Save serializes the full cart snapshot and overwrites the tenant's
// record. Full replace, never a partial merge.
func (a *Adapter) Save(ctx context.Context, c cart.Cart) error {
	value, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart for tenant %q: %w", c.TenantID, err)
	}
	if err := a.backend.Put(ctx, Key(c.TenantID), value); err != nil {
		return fmt.Errorf("save cart for tenant %q: %w", c.TenantID, err)
	}
	return nil
}

func emptyWithTotals(tenantID string, taxRate float64) cart.Cart {
	c := cart.Empty(tenantID)
	cart.ApplyTotals(&c, taxRate)
	return c
}

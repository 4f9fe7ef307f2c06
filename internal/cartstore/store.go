package cartstore

import (
	"context"
	"log/slog"

	"github.com/tillroom/consigncart/internal/cart"
	"github.com/tillroom/consigncart/internal/storage"
)

// Store holds the authoritative cart for one tenant.
//
// Exactly one Store instance owns a tenant's in-memory cart at any time;
// the storage adapter owns the durable copy, which every successful
// mutation fully overwrites. Construct stores through the registry rather
// than directly so the one-store-per-tenant invariant holds.
type Store struct {
	tenantID string
	taxRate  float64
	adapter  *storage.Adapter
	clock    Clock
	tokens   TokenGenerator
	logger   *slog.Logger

	current   cart.Cart
	listeners []listener
	nextID    int
}

// listener pairs a subscriber callback with a removal handle.
type listener struct {
	id int
	fn func(cart.Cart)
}

// Option configures a Store at construction.
type Option func(*Store)

// WithClock substitutes the timestamp source. Tests use the deterministic
// clock from testutil.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithTokenGenerator substitutes the mutation token source.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(s *Store) { s.tokens = g }
}

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a store for tenantID, rehydrating the cart from the adapter.
// A tenant with no persisted record starts with an empty cart; a corrupt
// record is recovered to empty by the adapter. Either way construction
// cannot fail.
func New(ctx context.Context, tenantID string, adapter *storage.Adapter, taxRate float64, opts ...Option) *Store {
	s := &Store{
		tenantID: tenantID,
		taxRate:  taxRate,
		adapter:  adapter,
		clock:    SystemClock{},
		tokens:   UUIDv7Generator{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current = adapter.Load(ctx, tenantID, taxRate)
	return s
}

// TenantID returns the tenant this store belongs to.
func (s *Store) TenantID() string {
	return s.tenantID
}

// TaxRate returns the rate used for totals computation.
func (s *Store) TaxRate() float64 {
	return s.taxRate
}

// Add puts quantity units of item into the cart.
//
// Returns false with no state change if the item id is empty or quantity
// is not positive. If the item is already present its quantity is
// incremented and its AddedAt refreshed; otherwise the item is appended at
// the end, so display order reflects first-added-first-shown. New items
// are marked available; availability is not re-validated afterwards.
func (s *Store) Add(ctx context.Context, item cart.Item, quantity int) bool {
	item.ItemID = cart.NormalizeID(item.ItemID)
	if item.ItemID == "" || quantity <= 0 {
		return false
	}

	now := s.clock.Now()
	if i := s.current.IndexOf(item.ItemID); i >= 0 {
		s.current.Items[i].Quantity += quantity
		s.current.Items[i].AddedAt = now
	} else {
		item.Quantity = quantity
		item.AddedAt = now
		item.IsAvailable = true
		s.current.Items = append(s.current.Items, item)
	}

	s.commit(ctx, "add")
	return true
}

// UpdateQuantity sets the quantity of an existing item.
//
// Returns false if quantity is negative or the item is absent. A quantity
// of zero removes the item - a zero-quantity row is never stored.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) bool {
	itemID = cart.NormalizeID(itemID)
	if quantity < 0 {
		return false
	}
	i := s.current.IndexOf(itemID)
	if i < 0 {
		return false
	}
	if quantity == 0 {
		return s.Remove(ctx, itemID)
	}

	s.current.Items[i].Quantity = quantity
	s.current.Items[i].AddedAt = s.clock.Now()
	s.commit(ctx, "update_quantity")
	return true
}

// Remove deletes the matching item and reports whether a removal occurred.
func (s *Store) Remove(ctx context.Context, itemID string) bool {
	itemID = cart.NormalizeID(itemID)
	i := s.current.IndexOf(itemID)
	if i < 0 {
		return false
	}

	s.current.Items = append(s.current.Items[:i], s.current.Items[i+1:]...)
	s.commit(ctx, "remove")
	return true
}

// Clear empties the cart unconditionally. The tenant's record remains
// addressable; it is overwritten with an empty snapshot, never deleted.
func (s *Store) Clear(ctx context.Context) {
	s.current.Items = s.current.Items[:0]
	s.commit(ctx, "clear")
}

// Merge reconciles an authoritative (account) item list with the cart's
// current items, treating the current items as the guest side. Used once
// at login; see cart.MergeItems for the double-invocation hazard.
func (s *Store) Merge(ctx context.Context, authoritative []cart.Item) {
	s.current.Items = cart.MergeItems(authoritative, s.current.Items)
	s.commit(ctx, "merge")
}

// Snapshot returns the current cart by value. Mutating the returned cart
// has no effect on the store.
func (s *Store) Snapshot() cart.Cart {
	return s.current.Clone()
}

// IsItemInCart reports whether itemID is present.
func (s *Store) IsItemInCart(itemID string) bool {
	return s.current.IndexOf(cart.NormalizeID(itemID)) >= 0
}

// GetItemQuantity returns the quantity of itemID, or 0 if absent.
func (s *Store) GetItemQuantity(itemID string) int {
	i := s.current.IndexOf(cart.NormalizeID(itemID))
	if i < 0 {
		return 0
	}
	return s.current.Items[i].Quantity
}

// ExportForCheckout returns the read-only projection handed to checkout.
func (s *Store) ExportForCheckout() cart.CheckoutExport {
	return cart.ExportForCheckout(s.current)
}

// Subscribe registers fn to be called with a fresh snapshot after every
// successful mutation, synchronously within the mutating call and in
// subscriber-registration order. The returned function unregisters the
// subscriber; remaining subscribers keep their relative order.
func (s *Store) Subscribe(fn func(cart.Cart)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// commit finishes a successful mutation: advance LastUpdated, recompute
// totals, persist, then notify. Persist MUST precede notify - see the
// package documentation.
func (s *Store) commit(ctx context.Context, op string) {
	now := s.clock.Now()
	// Guard against a regressing wall clock; LastUpdated never moves back.
	if now.After(s.current.LastUpdated) {
		s.current.LastUpdated = now
	}
	cart.ApplyTotals(&s.current, s.taxRate)

	token := s.tokens.Generate()
	if err := s.adapter.Save(ctx, s.current); err != nil {
		// The in-memory cart stays authoritative; the durable copy catches
		// up on the next successful save.
		s.logger.Warn("cart save failed",
			"tenant", s.tenantID, "op", op, "token", token, "error", err)
	}

	snapshot := s.current.Clone()
	for _, l := range s.listeners {
		l.fn(snapshot)
	}

	s.logger.Debug("cart mutated",
		"tenant", s.tenantID,
		"op", op,
		"token", token,
		"item_count", s.current.ItemCount,
		"total", s.current.Total,
	)
}

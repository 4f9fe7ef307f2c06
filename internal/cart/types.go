package cart

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Item is a single line in a tenant's cart.
//
// The identity of a line is its ItemID: a cart never holds two lines with
// the same ItemID. Display metadata (Title, Category, Brand, Condition,
// PrimaryImageURL) is carried opaquely from the catalog descriptor supplied
// at add time and is never re-validated here.
type Item struct {
	ItemID          string    `json:"item_id"`
	Title           string    `json:"title"`
	Price           float64   `json:"price"`
	Quantity        int       `json:"quantity"`
	Category        string    `json:"category,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	Condition       string    `json:"condition,omitempty"`
	PrimaryImageURL string    `json:"primary_image_url,omitempty"`
	AddedAt         time.Time `json:"added_at"`
	IsAvailable     bool      `json:"is_available"`
}

// Cart is one tenant's cart snapshot.
//
// Items preserve insertion order (first added, first shown). ItemCount,
// Subtotal, Tax and Total are derived fields - they are recomputed by
// ComputeTotals after every mutation and again on every load from storage,
// never trusted from a persisted copy.
//
// Timestamps serialize as RFC 3339 (ISO-8601) via encoding/json.
type Cart struct {
	TenantID    string    `json:"tenant_id"`
	Items       []Item    `json:"items"`
	ItemCount   int       `json:"item_count"`
	Subtotal    float64   `json:"subtotal"`
	Tax         float64   `json:"tax"`
	Total       float64   `json:"total"`
	LastUpdated time.Time `json:"last_updated"`
}

// Empty returns a fresh cart for tenantID with no items and zeroed totals.
func Empty(tenantID string) Cart {
	return Cart{
		TenantID: tenantID,
		Items:    []Item{},
	}
}

// Clone returns a deep copy of the cart.
// Callers receive snapshots by value; the Items slice must not alias the
// store's authoritative copy.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]Item, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// IndexOf returns the position of itemID in the cart, or -1 if absent.
func (c Cart) IndexOf(itemID string) int {
	for i, it := range c.Items {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}

// NormalizeID canonicalizes a tenant or item identifier.
//
// Identifiers arrive from user-entered store names and catalog SKUs;
// NFC normalization ensures visually identical strings map to a single
// storage key regardless of the Unicode composition they arrived in.
func NormalizeID(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

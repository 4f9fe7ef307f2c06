package cart

import "math"

// Totals holds the derived monetary fields of a cart.
type Totals struct {
	ItemCount int
	Subtotal  float64
	Tax       float64
	Total     float64
}

// Round2 rounds a non-negative currency amount to the minor unit (cents)
// using round-half-up: multiply by 100, round to the nearest integer,
// divide by 100.
//
// Aggregates are rounded once per field (subtotal, tax), not per line item,
// so binary floating point drift cannot accumulate across many lines.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeTotals derives item count and monetary totals from an item list.
//
// Pure and deterministic: the same items and rate always produce the same
// totals. Subtotal and tax are each rounded to cents independently before
// summing into total.
func ComputeTotals(items []Item, taxRate float64) Totals {
	var t Totals
	var subtotal float64
	for _, it := range items {
		t.ItemCount += it.Quantity
		subtotal += it.Price * float64(it.Quantity)
	}
	t.Subtotal = Round2(subtotal)
	t.Tax = Round2(t.Subtotal * taxRate)
	t.Total = t.Subtotal + t.Tax
	return t
}

// ApplyTotals recomputes a cart's derived fields in place from its items.
func ApplyTotals(c *Cart, taxRate float64) {
	t := ComputeTotals(c.Items, taxRate)
	c.ItemCount = t.ItemCount
	c.Subtotal = t.Subtotal
	c.Tax = t.Tax
	c.Total = t.Total
}

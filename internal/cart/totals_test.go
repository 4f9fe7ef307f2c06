package cart

import (
	"testing"
	"time"
)

func TestRound2_HalfUp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact cents", 50.00, 50.00},
		{"half rounds up", 0.625, 0.63},
		{"below half rounds down", 0.624, 0.62},
		{"above half rounds up", 0.626, 0.63},
		{"zero", 0, 0},
		{"many digits", 4.7976, 4.80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComputeTotals_EightPercent(t *testing.T) {
	items := []Item{
		{ItemID: "sku-1", Price: 50.00, Quantity: 1},
	}

	got := ComputeTotals(items, 0.08)
	if got.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", got.ItemCount)
	}
	if got.Subtotal != 50.00 {
		t.Errorf("Subtotal = %v, want 50.00", got.Subtotal)
	}
	if got.Tax != 4.00 {
		t.Errorf("Tax = %v, want 4.00", got.Tax)
	}
	if got.Total != 54.00 {
		t.Errorf("Total = %v, want 54.00", got.Total)
	}
}

func TestComputeTotals_QuantityThree(t *testing.T) {
	items := []Item{
		{ItemID: "sku-1", Price: 50.00, Quantity: 3},
	}

	got := ComputeTotals(items, 0.08)
	if got.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", got.ItemCount)
	}
	if got.Subtotal != 150.00 {
		t.Errorf("Subtotal = %v, want 150.00", got.Subtotal)
	}
	if got.Tax != 12.00 {
		t.Errorf("Tax = %v, want 12.00", got.Tax)
	}
	if got.Total != 162.00 {
		t.Errorf("Total = %v, want 162.00", got.Total)
	}
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	got := ComputeTotals(nil, 0.08)
	if got.ItemCount != 0 || got.Subtotal != 0 || got.Tax != 0 || got.Total != 0 {
		t.Errorf("totals of empty list = %+v, want all zero", got)
	}
}

func TestComputeTotals_RoundsAggregatesNotLines(t *testing.T) {
	// Three lines at 19.99: subtotal is rounded once (59.97), tax once (4.80).
	items := []Item{
		{ItemID: "a", Price: 19.99, Quantity: 1},
		{ItemID: "b", Price: 19.99, Quantity: 1},
		{ItemID: "c", Price: 19.99, Quantity: 1},
	}

	got := ComputeTotals(items, 0.08)
	if got.Subtotal != 59.97 {
		t.Errorf("Subtotal = %v, want 59.97", got.Subtotal)
	}
	if got.Tax != 4.80 {
		t.Errorf("Tax = %v, want 4.80", got.Tax)
	}
	if got.Total != 64.77 {
		t.Errorf("Total = %v, want 64.77", got.Total)
	}
}

func TestApplyTotals_OverwritesStaleFields(t *testing.T) {
	c := Cart{
		TenantID: "acme",
		Items: []Item{
			{ItemID: "sku-1", Price: 10.00, Quantity: 2},
		},
		// Stale persisted values that must not survive a recompute.
		ItemCount: 99,
		Subtotal:  999,
		Tax:       999,
		Total:     999,
	}

	ApplyTotals(&c, 0.08)
	if c.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", c.ItemCount)
	}
	if c.Subtotal != 20.00 || c.Tax != 1.60 || c.Total != 21.60 {
		t.Errorf("totals = %v/%v/%v, want 20.00/1.60/21.60", c.Subtotal, c.Tax, c.Total)
	}
}

func TestClone_DoesNotAliasItems(t *testing.T) {
	orig := Cart{
		TenantID: "acme",
		Items: []Item{
			{ItemID: "sku-1", Quantity: 1, AddedAt: time.Now()},
		},
	}

	cp := orig.Clone()
	cp.Items[0].Quantity = 42
	if orig.Items[0].Quantity != 1 {
		t.Error("Clone() shares the Items backing array with the original")
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  acme  ", "acme"},
		{"plain ascii untouched", "sku-1", "sku-1"},
		// U+0065 U+0301 (e + combining acute) composes to U+00E9.
		{"nfc composition", "cafe\u0301", "caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

package cart

import (
	"testing"
	"time"
)

func TestMergeItems_SumsOverlappingQuantities(t *testing.T) {
	authoritative := []Item{
		{ItemID: "sku-A", Quantity: 3},
		{ItemID: "sku-B", Quantity: 1},
	}
	guest := []Item{
		{ItemID: "sku-A", Quantity: 2},
	}

	got := MergeItems(authoritative, guest)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ItemID != "sku-A" || got[0].Quantity != 5 {
		t.Errorf("got[0] = %s/%d, want sku-A/5", got[0].ItemID, got[0].Quantity)
	}
	if got[1].ItemID != "sku-B" || got[1].Quantity != 1 {
		t.Errorf("got[1] = %s/%d, want sku-B/1", got[1].ItemID, got[1].Quantity)
	}
}

func TestMergeItems_AppendsGuestOnlyItems(t *testing.T) {
	authoritative := []Item{
		{ItemID: "sku-2", Quantity: 1},
		{ItemID: "sku-3", Quantity: 2},
	}
	guest := []Item{
		{ItemID: "sku-2", Quantity: 1},
		{ItemID: "sku-9", Quantity: 4, Title: "guest only"},
	}

	got := MergeItems(authoritative, guest)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Quantity != 2 {
		t.Errorf("sku-2 quantity = %d, want 2", got[0].Quantity)
	}
	if got[1].ItemID != "sku-3" || got[1].Quantity != 2 {
		t.Errorf("got[1] = %s/%d, want sku-3/2 (untouched)", got[1].ItemID, got[1].Quantity)
	}
	if got[2].ItemID != "sku-9" || got[2].Title != "guest only" {
		t.Errorf("got[2] = %s/%q, want appended guest item with fields intact", got[2].ItemID, got[2].Title)
	}
}

func TestMergeItems_KeepsLaterAddedAt(t *testing.T) {
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("guest newer", func(t *testing.T) {
		got := MergeItems(
			[]Item{{ItemID: "x", Quantity: 1, AddedAt: early}},
			[]Item{{ItemID: "x", Quantity: 1, AddedAt: late}},
		)
		if !got[0].AddedAt.Equal(late) {
			t.Errorf("AddedAt = %v, want later timestamp %v", got[0].AddedAt, late)
		}
	})

	t.Run("authoritative newer", func(t *testing.T) {
		got := MergeItems(
			[]Item{{ItemID: "x", Quantity: 1, AddedAt: late}},
			[]Item{{ItemID: "x", Quantity: 1, AddedAt: early}},
		)
		if !got[0].AddedAt.Equal(late) {
			t.Errorf("AddedAt = %v, want later timestamp %v", got[0].AddedAt, late)
		}
	})
}

func TestMergeItems_EmptyInputs(t *testing.T) {
	if got := MergeItems(nil, nil); len(got) != 0 {
		t.Errorf("merge of two empty lists has %d items", len(got))
	}

	guest := []Item{{ItemID: "g", Quantity: 1}}
	if got := MergeItems(nil, guest); len(got) != 1 || got[0].ItemID != "g" {
		t.Errorf("merge into empty authoritative = %+v, want the guest item", got)
	}

	auth := []Item{{ItemID: "a", Quantity: 2}}
	if got := MergeItems(auth, nil); len(got) != 1 || got[0].Quantity != 2 {
		t.Errorf("merge of empty guest = %+v, want authoritative unchanged", got)
	}
}

func TestMergeItems_DoesNotMutateInputs(t *testing.T) {
	authoritative := []Item{{ItemID: "x", Quantity: 1}}
	guest := []Item{{ItemID: "x", Quantity: 2}}

	MergeItems(authoritative, guest)
	if authoritative[0].Quantity != 1 {
		t.Error("authoritative input was mutated")
	}
	if guest[0].Quantity != 2 {
		t.Error("guest input was mutated")
	}
}

func TestMergeItems_DoubleInvocationDoubleCounts(t *testing.T) {
	// Documented caller-discipline hazard: merging the same guest list twice
	// double-counts its quantities. This is intentional behavior.
	authoritative := []Item{{ItemID: "x", Quantity: 1}}
	guest := []Item{{ItemID: "x", Quantity: 2}}

	once := MergeItems(authoritative, guest)
	twice := MergeItems(once, guest)
	if twice[0].Quantity != 5 {
		t.Errorf("quantity after double merge = %d, want 5", twice[0].Quantity)
	}
}

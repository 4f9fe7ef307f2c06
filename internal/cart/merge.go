package cart

// MergeItems reconciles a guest (anonymous) item list into an authoritative
// (account) item list at login.
//
// The result starts from the authoritative list and preserves its order.
// For each guest item:
//   - same ItemID present in the authoritative list: quantities are summed
//     and AddedAt becomes the later of the two timestamps
//   - no match: the guest item is appended at the end, fields intact
//
// Authoritative items untouched by any guest item are returned exactly as
// they were. Neither input slice is mutated.
//
// MergeItems is NOT safe against double invocation for the same login:
// calling it twice with the same guest list double-counts guest quantities.
// Invoking it exactly once per login is the caller's responsibility.
func MergeItems(authoritative, guest []Item) []Item {
	merged := make([]Item, len(authoritative))
	copy(merged, authoritative)

	for _, g := range guest {
		matched := false
		for i := range merged {
			if merged[i].ItemID != g.ItemID {
				continue
			}
			merged[i].Quantity += g.Quantity
			if g.AddedAt.After(merged[i].AddedAt) {
				merged[i].AddedAt = g.AddedAt
			}
			matched = true
			break
		}
		if !matched {
			merged = append(merged, g)
		}
	}

	return merged
}

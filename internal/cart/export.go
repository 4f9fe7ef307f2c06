package cart

// CheckoutLine is one cart line reduced to what checkout needs.
type CheckoutLine struct {
	ItemID   string  `json:"item_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CheckoutSummary mirrors the cart's derived totals.
type CheckoutSummary struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
}

// CheckoutExport is the read-only projection handed to the checkout flow.
// It carries no display metadata and no timestamps - the checkout service
// re-resolves items against the catalog on its own.
type CheckoutExport struct {
	TenantID string          `json:"tenant_id"`
	Items    []CheckoutLine  `json:"items"`
	Summary  CheckoutSummary `json:"summary"`
}

// ExportForCheckout projects a cart snapshot into its checkout form.
func ExportForCheckout(c Cart) CheckoutExport {
	lines := make([]CheckoutLine, len(c.Items))
	for i, it := range c.Items {
		lines[i] = CheckoutLine{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return CheckoutExport{
		TenantID: c.TenantID,
		Items:    lines,
		Summary: CheckoutSummary{
			ItemCount: c.ItemCount,
			Subtotal:  c.Subtotal,
			Tax:       c.Tax,
			Total:     c.Total,
		},
	}
}

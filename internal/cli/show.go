package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tillroom/consigncart/internal/cart"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the tenant's cart",
		Long: `Show the tenant's cart: items in the order they were added,
followed by the derived totals.

Example:
  consigncart show --tenant acme --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.currentStore(cmd, opts)
	if err != nil {
		return err
	}

	snap := store.Snapshot()
	if opts.Format == "json" {
		return e.out.Success(snap)
	}
	return e.out.Success(renderCart(snap))
}

// renderCart formats a cart snapshot for text output.
func renderCart(c cart.Cart) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "cart for tenant %s\n", c.TenantID)
	if len(c.Items) == 0 {
		buf.WriteString("  (empty)\n")
	}
	for _, it := range c.Items {
		title := it.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(&buf, "  %-20s %-30s %3d x %8.2f\n", it.ItemID, title, it.Quantity, it.Price)
	}

	fmt.Fprintf(&buf, "items:    %d\n", c.ItemCount)
	fmt.Fprintf(&buf, "subtotal: %.2f\n", c.Subtotal)
	fmt.Fprintf(&buf, "tax:      %.2f\n", c.Tax)
	fmt.Fprintf(&buf, "total:    %.2f", c.Total)

	return buf.String()
}

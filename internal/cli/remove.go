package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the tenant's cart",
		Long: `Remove an item from the tenant's cart.

Exits with status 1 if the item was not in the cart.

Example:
  consigncart remove sku-1 --tenant acme`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, itemID string, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.currentStore(cmd, opts)
	if err != nil {
		return err
	}

	if !store.Remove(cmd.Context(), itemID) {
		e.out.Error("NOT_IN_CART", fmt.Sprintf("item %q is not in the cart", itemID))
		return NewExitError(ExitFailure, "item not in cart")
	}

	snap := store.Snapshot()
	if opts.Format == "json" {
		return e.out.Success(snap)
	}
	return e.out.Success(fmt.Sprintf("removed %s (cart: %d items, total %.2f)",
		itemID, snap.ItemCount, snap.Total))
}

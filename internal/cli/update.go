package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <item-id> <quantity>",
		Short: "Set the quantity of an item in the tenant's cart",
		Long: `Set the quantity of an item already in the tenant's cart.

A quantity of 0 removes the item. Negative quantities are rejected.

Example:
  consigncart update sku-1 3 --tenant acme`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid quantity %q", args[1]), err)
			}
			return runUpdate(rootOpts, args[0], quantity, cmd)
		},
	}

	return cmd
}

func runUpdate(opts *RootOptions, itemID string, quantity int, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.currentStore(cmd, opts)
	if err != nil {
		return err
	}

	if !store.UpdateQuantity(cmd.Context(), itemID, quantity) {
		e.out.Error("UPDATE_REJECTED", fmt.Sprintf("update rejected: item %q, quantity %d", itemID, quantity))
		return NewExitError(ExitFailure, "update rejected")
	}

	snap := store.Snapshot()
	if opts.Format == "json" {
		return e.out.Success(snap)
	}
	return e.out.Success(fmt.Sprintf("updated %s to quantity %d (cart: %d items, total %.2f)",
		itemID, quantity, snap.ItemCount, snap.Total))
}

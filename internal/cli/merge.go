package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tillroom/consigncart/internal/cart"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	*RootOptions
	AuthoritativeFile string
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the account's server-known items into the tenant's cart",
		Long: `Merge an authoritative item list into the tenant's cart.

The tenant's current (guest) items are reconciled into the authoritative
list supplied by the account service at login: overlapping item ids sum
their quantities, guest-only items are appended. The authoritative list is
read as a JSON array of {item_id, title, price, quantity}.

Run this exactly once per login - merging the same guest cart twice
double-counts its quantities.

Example:
  consigncart merge --tenant acme --authoritative account-items.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuthoritativeFile, "authoritative", "", "JSON file with the account's item list (required)")
	cmd.MarkFlagRequired("authoritative")

	return cmd
}

// authoritativeItem is the wire shape of one account-side item.
type authoritativeItem struct {
	ItemID   string  `json:"item_id"`
	Title    string  `json:"title,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func runMerge(opts *MergeOptions, cmd *cobra.Command) error {
	data, err := os.ReadFile(opts.AuthoritativeFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading authoritative items", err)
	}

	var raw []authoritativeItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return WrapExitError(ExitCommandError, "parsing authoritative items", err)
	}

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.currentStore(cmd, opts.RootOptions)
	if err != nil {
		return err
	}

	authoritative := make([]cart.Item, len(raw))
	for i, a := range raw {
		authoritative[i] = cart.Item{
			ItemID:      a.ItemID,
			Title:       a.Title,
			Price:       a.Price,
			Quantity:    a.Quantity,
			IsAvailable: true,
		}
	}

	store.Merge(cmd.Context(), authoritative)

	snap := store.Snapshot()
	if opts.Format == "json" {
		return e.out.Success(snap)
	}
	return e.out.Success(fmt.Sprintf("merged %d authoritative items (cart: %d items, total %.2f)",
		len(authoritative), snap.ItemCount, snap.Total))
}

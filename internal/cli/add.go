package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tillroom/consigncart/internal/cart"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Title     string
	Price     float64
	Quantity  int
	Category  string
	Brand     string
	Condition string
	ImageURL  string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Add an item to the tenant's cart",
		Long: `Add an item to the tenant's cart.

The item descriptor (title, price, condition, ...) comes from the catalog
and is stored as given; it is not validated against the catalog here.
Adding an item that is already in the cart increments its quantity.

Example:
  consigncart add sku-1 --tenant acme --title "Brass Lamp" --price 50.00 --qty 1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "item title")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "unit price")
	cmd.Flags().IntVar(&opts.Quantity, "qty", 1, "quantity to add")
	cmd.Flags().StringVar(&opts.Category, "category", "", "item category")
	cmd.Flags().StringVar(&opts.Brand, "brand", "", "item brand")
	cmd.Flags().StringVar(&opts.Condition, "condition", "", "item condition")
	cmd.Flags().StringVar(&opts.ImageURL, "image", "", "primary image URL")

	return cmd
}

func runAdd(opts *AddOptions, itemID string, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.currentStore(cmd, opts.RootOptions)
	if err != nil {
		return err
	}

	item := cart.Item{
		ItemID:          itemID,
		Title:           opts.Title,
		Price:           opts.Price,
		Category:        opts.Category,
		Brand:           opts.Brand,
		Condition:       opts.Condition,
		PrimaryImageURL: opts.ImageURL,
	}

	if !store.Add(cmd.Context(), item, opts.Quantity) {
		e.out.Error("ADD_REJECTED", fmt.Sprintf("add rejected: item %q, quantity %d", itemID, opts.Quantity))
		return NewExitError(ExitFailure, "add rejected")
	}

	snap := store.Snapshot()
	if opts.Format == "json" {
		return e.out.Success(snap)
	}
	return e.out.Success(fmt.Sprintf("added %d x %s (cart: %d items, total %.2f)",
		opts.Quantity, itemID, snap.ItemCount, snap.Total))
}

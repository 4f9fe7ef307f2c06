package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tenant's cart for checkout",
		Long: `Export the tenant's cart as the read-only checkout projection:
item ids, quantities and prices plus the totals summary. Display metadata
is omitted; the checkout flow re-resolves items against the catalog.

Example:
  consigncart export --tenant acme > checkout.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, cmd)
		},
	}

	return cmd
}

func runExport(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.currentStore(cmd, opts)
	if err != nil {
		return err
	}

	export := store.ExportForCheckout()
	if opts.Format == "json" {
		return e.out.Success(export)
	}

	// The projection is a machine-readable handoff; text mode still
	// prints plain JSON rather than a lossy rendering.
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding export", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

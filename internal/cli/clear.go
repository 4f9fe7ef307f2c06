package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the tenant's cart",
		Long: `Empty the tenant's cart unconditionally.

The tenant's stored record remains; it is overwritten with an empty cart.

Example:
  consigncart clear --tenant acme`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(rootOpts, cmd)
		},
	}

	return cmd
}

func runClear(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.currentStore(cmd, opts)
	if err != nil {
		return err
	}

	store.Clear(cmd.Context())

	if opts.Format == "json" {
		return e.out.Success(store.Snapshot())
	}
	return e.out.Success(fmt.Sprintf("cleared cart for tenant %s", store.TenantID()))
}

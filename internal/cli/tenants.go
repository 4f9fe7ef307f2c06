package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// keyLister is implemented by backends that can enumerate stored records.
type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

// NewTenantsCommand creates the tenants command.
func NewTenantsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "List tenants with persisted carts",
		Long: `List the tenants that have a cart record in storage, most
recently written first. Only the sqlite backend supports listing.

Example:
  consigncart tenants --path carts.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTenants(rootOpts, cmd)
		},
	}

	return cmd
}

func runTenants(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	lister, ok := e.backend.(keyLister)
	if !ok {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("backend %q does not support listing tenants", opts.Backend))
	}

	keys, err := lister.Keys(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing tenants", err)
	}

	tenants := make([]string, 0, len(keys))
	for _, key := range keys {
		tenants = append(tenants, strings.TrimPrefix(key, "cart_"))
	}

	if opts.Format == "json" {
		return e.out.Success(tenants)
	}
	if len(tenants) == 0 {
		return e.out.Success("no persisted carts")
	}
	return e.out.Success(strings.Join(tenants, "\n"))
}

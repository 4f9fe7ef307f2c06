// Package cli implements the consigncart command line interface.
//
// Commands operate on one tenant's cart at a time, addressed with the
// global --tenant flag, against a durable backend selected with --backend
// and --path. Output is text by default and JSON with --format json.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tillroom/consigncart/internal/cartstore"
	"github.com/tillroom/consigncart/internal/policy"
	"github.com/tillroom/consigncart/internal/registry"
	"github.com/tillroom/consigncart/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Backend string // "sqlite" | "file"
	Path    string // database file or storage directory
	Tenant  string // tenant whose cart commands operate on
	Policy  string // optional CUE policy file
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidBackends defines the allowed storage backends.
var ValidBackends = []string{"sqlite", "file"}

// NewRootCommand creates the root command for the consigncart CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "consigncart",
		Short: "Per-tenant shopping cart engine",
		Long:  "Manage persisted, per-tenant shopping carts: add and update items, merge a guest cart at login, and export for checkout.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !contains(ValidBackends, opts.Backend) {
				return fmt.Errorf("invalid backend %q: must be one of %v", opts.Backend, ValidBackends)
			}

			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "sqlite", "storage backend (sqlite|file)")
	cmd.PersistentFlags().StringVar(&opts.Path, "path", "carts.db", "database file (sqlite) or storage directory (file)")
	cmd.PersistentFlags().StringVarP(&opts.Tenant, "tenant", "t", "", "tenant (store) whose cart to operate on")
	cmd.PersistentFlags().StringVar(&opts.Policy, "policy", "", "tax policy file (CUE); built-in 8% default when omitted")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewMergeCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTenantsCommand(opts))

	return cmd
}

// contains checks membership in a small options list.
func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// env bundles everything a command needs to reach a cart.
type env struct {
	backend  storage.Backend
	registry *registry.Registry
	out      *OutputFormatter
}

// close releases the backend.
func (e *env) close() {
	e.backend.Close()
}

// openEnv opens the storage backend, loads the tax policy and builds the
// registry for one command invocation.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	var (
		backend storage.Backend
		err     error
	)
	switch opts.Backend {
	case "file":
		backend, err = storage.OpenFileDir(opts.Path)
	default:
		backend, err = storage.OpenSQLite(opts.Path)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening storage", err)
	}

	rates := policy.Default()
	if opts.Policy != "" {
		rates, err = policy.Load(opts.Policy)
		if err != nil {
			backend.Close()
			return nil, WrapExitError(ExitCommandError, "loading policy", err)
		}
	}

	adapter := storage.NewAdapter(backend, slog.Default())
	return &env{
		backend:  backend,
		registry: registry.New(adapter, rates, registry.WithLogger(slog.Default())),
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
	}, nil
}

// currentStore establishes the tenant context from --tenant and returns
// the tenant's store. An empty --tenant surfaces the missing-context error
// instead of silently picking a namespace.
func (e *env) currentStore(cmd *cobra.Command, opts *RootOptions) (*cartstore.Store, error) {
	if opts.Tenant != "" {
		e.registry.SetCurrentTenant(cmd.Context(), opts.Tenant)
	}

	s, err := e.registry.CurrentCart()
	if err != nil {
		if registry.IsNoActiveTenant(err) {
			return nil, WrapExitError(ExitCommandError, "no tenant selected (use --tenant)", err)
		}
		return nil, WrapExitError(ExitCommandError, "resolving tenant cart", err)
	}
	return s, nil
}

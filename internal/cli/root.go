// Package cli implements nexusctl, the operator command line over the
// persisted store.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"nexus/internal/config"
	"nexus/internal/repository"
	"nexus/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Store      string
	SQLitePath string
}

// NewRootCommand creates the root command for nexusctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "nexusctl",
		Short:         "MIR Nexus operator tool",
		Long:          "Seed, back up, restore and inspect the MIR Nexus store outside the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "store driver override (memory|sqlite|postgres|redis)")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite-path", "", "sqlite file override")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewWipeCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// openState loads configuration, applies flag overrides and restores the
// state from the selected store. The closer releases the store.
func openState(ctx context.Context, opts *RootOptions) (*service.State, func() error, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if opts.Store != "" {
		cfg.StoreDriver = strings.ToLower(strings.TrimSpace(opts.Store))
	}
	if opts.SQLitePath != "" {
		cfg.SQLitePath = opts.SQLitePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	kv, closer, err := repository.OpenKV(cfg)
	if err != nil {
		return nil, nil, err
	}
	state := service.NewState(repository.NewStore(kv))
	state.Load(ctx)
	return state, closer, nil
}

// withState runs fn against an opened state and closes the store afterwards.
func withState(cmd *cobra.Command, opts *RootOptions, fn func(*service.State) error) (err error) {
	state, closer, err := openState(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(state)
}

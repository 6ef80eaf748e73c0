package main

import (
	"context"
	"fmt"

	"recruitcrm/internal/config"
	"recruitcrm/internal/server"
	"recruitcrm/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:           "recruitcrm",
		Short:         "Recruitment CRM API server and maintenance tools",
		Version:       server.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load before the environment (default .env,.env.local)")

	load := func() (*config.Configuration, error) {
		return config.Load(envFiles...)
	}
	cmd.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newReconcileCmd(load),
		newTokenCmd(load),
	)
	return cmd
}

type configLoader func() (*config.Configuration, error)

// connectDB opens the configured postgres pool; maintenance commands never fall back to memory
func connectDB(ctx context.Context, cfg *config.Configuration) (*pgxpool.Pool, error) {
	if cfg.Database.Driver != config.StoreDriverPostgres {
		return nil, fmt.Errorf("command requires STORE_DRIVER=%s", config.StoreDriverPostgres)
	}
	return database.NewPool(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.ConnTimeout, cfg.Logger())
}

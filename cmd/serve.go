package main

import (
	"os/signal"
	"syscall"

	"recruitcrm/internal/config"
	"recruitcrm/internal/migrations"
	"recruitcrm/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(load configLoader) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if migrate && cfg.Database.Driver == config.StoreDriverPostgres {
				pool, err := connectDB(ctx, cfg)
				if err != nil {
					cfg.Logger().WithError(err).Warn("skipping migrations")
				} else {
					runner, err := migrations.NewRunner(pool, cfg.Logger())
					if err == nil {
						err = runner.Up(ctx)
					}
					pool.Close()
					if err != nil {
						return err
					}
				}
			}

			app, err := server.Bootstrap(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Apply pending migrations before serving")
	return cmd
}

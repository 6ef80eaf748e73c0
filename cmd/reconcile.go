package main

import (
	"fmt"
	"time"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/jobs"
	"recruitcrm/internal/repositories"
	"recruitcrm/internal/services"

	"github.com/spf13/cobra"
)

func newReconcileCmd(load configLoader) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute applications_count for every job once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			pool, err := connectDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			store := repositories.NewPostgresStore(pool)
			jobService := services.NewJobService(store.Jobs, caching.NewNoopCacheService())
			corrected, err := jobs.NewApplicationsCountReconciler(jobService, timeout, cfg.Logger()).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "corrected %d job(s)\n", corrected)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Abort the pass after this long")
	return cmd
}

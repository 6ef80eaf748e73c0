package main

import (
	"fmt"
	"text/tabwriter"

	"recruitcrm/internal/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withRunner := func(fn func(cmd *cobra.Command, runner *migrations.Runner) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			pool, err := connectDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			runner, err := migrations.NewRunner(pool, cfg.Logger())
			if err != nil {
				return err
			}
			return fn(cmd, runner)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withRunner(func(cmd *cobra.Command, runner *migrations.Runner) error {
				return runner.Up(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withRunner(func(cmd *cobra.Command, runner *migrations.Runner) error {
				return runner.Down(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: withRunner(func(cmd *cobra.Command, runner *migrations.Runner) error {
				states, err := runner.Status(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tAPPLIED\tFILE")
				for _, s := range states {
					fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, s.Path)
				}
				return w.Flush()
			}),
		},
	)
	return cmd
}

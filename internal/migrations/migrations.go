// Package migrations holds the embedded schema and runs it with goose.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the migration sources rooted at the migration directory
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Runner applies the embedded migrations to a pgx pool
type Runner struct {
	provider *goose.Provider
	logger   *logrus.Entry
}

func NewRunner(pool *pgxpool.Pool, logger *logrus.Logger) (*Runner, error) {
	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, Files())
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return &Runner{provider: provider, logger: logger.WithField("component", "migrations")}, nil
}

func (r *Runner) Up(ctx context.Context) error {
	results, err := r.provider.Up(ctx)
	for _, res := range results {
		r.logResult(res)
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	if len(results) == 0 {
		r.logger.Info("schema is up to date")
	}
	return nil
}

// Down rolls back the most recent migration
func (r *Runner) Down(ctx context.Context) error {
	res, err := r.provider.Down(ctx)
	if res != nil {
		r.logResult(res)
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// MigrationState is one row of Status
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

func (r *Runner) Status(ctx context.Context) ([]MigrationState, error) {
	statuses, err := r.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}
	states := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		states = append(states, MigrationState{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return states, nil
}

func (r *Runner) logResult(res *goose.MigrationResult) {
	entry := r.logger.WithFields(logrus.Fields{
		"version":     res.Source.Version,
		"direction":   res.Direction,
		"duration_ms": res.Duration.Milliseconds(),
	})
	if res.Error != nil {
		entry.WithError(res.Error).Error("migration failed")
		return
	}
	entry.Info("migration applied")
}

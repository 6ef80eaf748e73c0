// Package testhelpers provisions a PostgreSQL schema for integration tests.
package testhelpers

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"recruitcrm/internal/migrations"
	"recruitcrm/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

var collections = []string{"applications", "candidate_sheets", "candidates", "jobs", "clients"}

// SetupTestDB connects to TEST_DATABASE_URL, applies the migrations and empties
// every collection. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	runner, err := migrations.NewRunner(pool, logger)
	if err != nil {
		pool.Close()
		t.Fatalf("Failed to prepare migrations: %v", err)
	}
	if err := runner.Up(ctx); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db := &TestDB{Pool: pool, Cleanup: pool.Close}
	db.Truncate(t)
	t.Cleanup(db.Cleanup)
	return db
}

// Truncate removes every document from every collection
func (db *TestDB) Truncate(t *testing.T) {
	t.Helper()
	for _, table := range collections {
		if _, err := db.Pool.Exec(context.Background(), "TRUNCATE TABLE "+table); err != nil {
			t.Fatalf("Failed to truncate %s: %v", table, err)
		}
	}
}

// NewClient returns a client document owned by tenantID
func NewClient(tenantID, id, name string) *models.Client {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Client{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		Status:    models.ClientStatusCold,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewJob returns an open full-time job document owned by tenantID
func NewJob(tenantID, id, clientID, title string) *models.Job {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Job{
		ID:         id,
		TenantID:   tenantID,
		ClientID:   clientID,
		Title:      title,
		Type:       models.JobTypeFullTime,
		Status:     models.JobStatusOpen,
		PostedDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewApplication returns a New application with its creation history entry
func NewApplication(tenantID, id, candidateID, jobID, clientID string) *models.Application {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Application{
		ID:          id,
		TenantID:    tenantID,
		CandidateID: candidateID,
		JobID:       jobID,
		ClientID:    clientID,
		Status:      models.ApplicationStatusNew,
		AppliedAt:   now,
		StatusHistory: []models.StatusHistoryEntry{
			{Status: models.ApplicationStatusNew, Timestamp: now, Notes: "Application created"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

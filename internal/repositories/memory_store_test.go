package repositories

import (
	"context"
	"testing"
	"time"

	"recruitcrm/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ClientLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &models.Client{ID: "c1", TenantID: "u1", Name: "Acme"}
	second := &models.Client{ID: "c2", TenantID: "u1", Name: "Globex"}
	other := &models.Client{ID: "c3", TenantID: "u2", Name: "Initech"}
	for _, c := range []*models.Client{first, second, other} {
		require.NoError(t, store.Clients.Create(ctx, c))
	}

	list, err := store.Clients.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "Globex", list[1].Name)

	list[0].Name = "mutated"
	got, err := store.Clients.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	err = store.Clients.Delete(ctx, "u2", "c1")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Clients.Delete(ctx, "u1", "c1"))
	_, err = store.Clients.GetByID(ctx, "c1")
	assert.True(t, errors.Is(err, ErrNotFound))

	empty, err := store.Clients.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryStore_ApplicationHistoryIsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now().UTC()

	app := &models.Application{
		ID: "a1", TenantID: "u1", CandidateID: "cand", JobID: "job", ClientID: "client",
		StatusHistory: []models.StatusHistoryEntry{{Status: "New", Timestamp: now}},
	}
	require.NoError(t, store.Applications.Create(ctx, app))
	app.StatusHistory[0].Status = "changed"

	got, err := store.Applications.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.StatusHistory[0].Status)

	exists, err := store.Applications.ExistsFor(ctx, "u1", "cand", "job")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.Applications.ExistsFor(ctx, "u2", "cand", "job")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStore_ApplicationFilters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	apps := []*models.Application{
		{ID: "a1", TenantID: "u1", CandidateID: "x", JobID: "j1", ClientID: "c1"},
		{ID: "a2", TenantID: "u1", CandidateID: "y", JobID: "j1", ClientID: "c1"},
		{ID: "a3", TenantID: "u1", CandidateID: "x", JobID: "j2", ClientID: "c2"},
		{ID: "a4", TenantID: "u2", CandidateID: "x", JobID: "j1", ClientID: "c1"},
	}
	for _, a := range apps {
		require.NoError(t, store.Applications.Create(ctx, a))
	}

	byJob, _ := store.Applications.List(ctx, "u1", models.ApplicationFilter{JobID: "j1"})
	assert.Len(t, byJob, 2)

	byJobAndCandidate, _ := store.Applications.List(ctx, "u1", models.ApplicationFilter{JobID: "j1", CandidateID: "x"})
	require.Len(t, byJobAndCandidate, 1)
	assert.Equal(t, "a1", byJobAndCandidate[0].ID)

	byClient, _ := store.Applications.List(ctx, "u1", models.ApplicationFilter{ClientID: "c2"})
	require.Len(t, byClient, 1)
	assert.Equal(t, "a3", byClient[0].ID)
}

func TestMemoryStore_RecountApplications(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Jobs.Create(ctx, &models.Job{ID: "j1", TenantID: "u1", ApplicationsCount: 5}))
	require.NoError(t, store.Jobs.Create(ctx, &models.Job{ID: "j2", TenantID: "u1"}))
	require.NoError(t, store.Applications.Create(ctx, &models.Application{ID: "a1", TenantID: "u1", JobID: "j1"}))
	require.NoError(t, store.Applications.Create(ctx, &models.Application{ID: "a2", TenantID: "u1", JobID: "j2"}))

	require.NoError(t, store.Jobs.IncrementApplicationsCount(ctx, "u1", "j2"))

	changed, err := store.Jobs.RecountApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, changed)

	j1, _ := store.Jobs.GetByID(ctx, "j1")
	j2, _ := store.Jobs.GetByID(ctx, "j2")
	assert.Equal(t, 1, j1.ApplicationsCount)
	assert.Equal(t, 1, j2.ApplicationsCount)
}

func TestMemoryStore_SheetRowsPartitionedBySheet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.SheetCandidates.Create(ctx, &models.SheetCandidate{ID: "s1", TenantID: "u1", ClientName: "Acme", JobTitle: "Dev"}))
	require.NoError(t, store.SheetCandidates.Create(ctx, &models.SheetCandidate{ID: "s2", TenantID: "u1", ClientName: "Acme", JobTitle: "QA"}))

	rows, err := store.SheetCandidates.ListBySheet(ctx, "u1", "Acme", "Dev")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s1", rows[0].ID)

	err = store.SheetCandidates.Update(ctx, &models.SheetCandidate{ID: "s1", TenantID: "u2", Status: "Hired"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

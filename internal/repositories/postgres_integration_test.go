package repositories_test

import (
	"context"
	"testing"

	"recruitcrm/internal/models"
	"recruitcrm/internal/repositories"
	"recruitcrm/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	store := repositories.NewPostgresStore(db.Pool)
	ctx := context.Background()

	require.NoError(t, store.Clients.Create(ctx, testhelpers.NewClient("u1", "c1", "Acme")))
	require.NoError(t, store.Clients.Create(ctx, testhelpers.NewClient("u2", "c2", "Globex")))

	clients, err := store.Clients.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme", clients[0].Name)

	err = store.Clients.Delete(ctx, "u1", "c2")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, store.Jobs.Create(ctx, testhelpers.NewJob("u1", "j1", "c1", "Engineer")))
	require.NoError(t, store.Applications.Create(ctx, testhelpers.NewApplication("u1", "a1", "cand1", "j1", "c1")))

	exists, err := store.Applications.ExistsFor(ctx, "u1", "cand1", "j1")
	require.NoError(t, err)
	assert.True(t, exists)

	corrected, err := store.Jobs.RecountApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, corrected)

	job, err := store.Jobs.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 1, job.ApplicationsCount)

	app, err := store.Applications.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, app.StatusHistory, 1)
	assert.Equal(t, models.ApplicationStatusNew, app.StatusHistory[0].Status)
}

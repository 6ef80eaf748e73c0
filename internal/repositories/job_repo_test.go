package repositories

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepo_RecountApplicationsReturnsTenants(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`(?s)UPDATE jobs j.*SET applications_count = c.total.*RETURNING j.tenant_id`).
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id"}).AddRow("u1").AddRow("u2").AddRow("u1"))

	tenants, err := NewJobRepository(mock).RecountApplications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u1"}, tenants)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_RecountApplicationsWrapsError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE jobs j`).WillReturnError(errors.New("connection reset"))

	_, err = NewJobRepository(mock).RecountApplications(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recount applications")
	assert.NoError(t, mock.ExpectationsWereMet())
}

package services

import (
	"context"
	"errors"
	"testing"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/models"
	"recruitcrm/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type JobServiceTestSuite struct {
	suite.Suite
	store   *repositories.Store
	service JobService
	ctx     context.Context
}

func (suite *JobServiceTestSuite) SetupTest() {
	suite.store = repositories.NewMemoryStore()
	suite.service = NewJobService(suite.store.Jobs, caching.NewNoopCacheService())
	suite.ctx = context.Background()
}

func TestJobServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JobServiceTestSuite))
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (suite *JobServiceTestSuite) TestCreate_Defaults() {
	job := &models.Job{Title: "Engineer", ClientID: "c1"}

	require.NoError(suite.T(), suite.service.Create(suite.ctx, "u1", job))

	assert.Equal(suite.T(), models.JobStatusOpen, job.Status)
	assert.Equal(suite.T(), models.JobTypeFullTime, job.Type)
	assert.Equal(suite.T(), 0, job.ApplicationsCount)
	assert.False(suite.T(), job.PostedDate.IsZero())
	assert.Nil(suite.T(), job.Deadline)
}

func (suite *JobServiceTestSuite) TestCreate_Validation() {
	tests := []struct {
		name  string
		job   *models.Job
		field string
	}{
		{"missing title", &models.Job{ClientID: "c1"}, "title"},
		{"missing client", &models.Job{Title: "Engineer"}, "client_id"},
		{"bad type", &models.Job{Title: "Engineer", ClientID: "c1", Type: "Gig"}, "type"},
		{"bad status", &models.Job{Title: "Engineer", ClientID: "c1", Status: "Paused"}, "status"},
		{"bad deadline", &models.Job{Title: "Engineer", ClientID: "c1", Deadline: strPtr("next week")}, "deadline"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.service.Create(suite.ctx, "u1", tt.job)
			var verr *ValidationError
			require.True(suite.T(), errors.As(err, &verr))
			assert.Contains(suite.T(), verr.Details, tt.field)
		})
	}
}

func (suite *JobServiceTestSuite) TestUpdate_SalaryAndDeadline() {
	job := &models.Job{Title: "Engineer", ClientID: "c1", SalaryMin: intPtr(50), Deadline: strPtr("2030-01-01")}
	require.NoError(suite.T(), suite.service.Create(suite.ctx, "u1", job))

	updated, err := suite.service.Update(suite.ctx, "u1", job.ID, models.JobPatch{
		SalaryMin: models.FlexibleInt{Set: true},
		SalaryMax: models.FlexibleInt{Set: true, Value: intPtr(90)},
		Deadline:  strPtr(""),
		Status:    strPtr(models.JobStatusOnHold),
	})

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), updated.SalaryMin)
	assert.Equal(suite.T(), 90, *updated.SalaryMax)
	assert.Nil(suite.T(), updated.Deadline)
	assert.Equal(suite.T(), models.JobStatusOnHold, updated.Status)
	assert.Equal(suite.T(), "Engineer", updated.Title)
}

func (suite *JobServiceTestSuite) TestTenantIsolation() {
	job := &models.Job{Title: "Engineer", ClientID: "c1"}
	require.NoError(suite.T(), suite.service.Create(suite.ctx, "u1", job))

	others, err := suite.service.List(suite.ctx, "u2")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), others)

	_, err = suite.service.Update(suite.ctx, "u2", job.ID, models.JobPatch{Title: strPtr("x")})
	assert.Equal(suite.T(), ErrForbidden, err)
	assert.Equal(suite.T(), ErrForbidden, suite.service.Delete(suite.ctx, "u2", job.ID))
	assert.Equal(suite.T(), ErrNotFound, suite.service.Delete(suite.ctx, "u1", "missing"))

	require.NoError(suite.T(), suite.service.Delete(suite.ctx, "u1", job.ID))
	mine, _ := suite.service.List(suite.ctx, "u1")
	assert.Empty(suite.T(), mine)
}

func (suite *JobServiceTestSuite) TestRecountApplications() {
	job := &models.Job{Title: "Engineer", ClientID: "c1"}
	require.NoError(suite.T(), suite.service.Create(suite.ctx, "u1", job))
	require.NoError(suite.T(), suite.store.Applications.Create(suite.ctx, &models.Application{ID: "a1", TenantID: "u1", JobID: job.ID}))

	changed, err := suite.service.RecountApplications(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), changed)

	list, _ := suite.service.List(suite.ctx, "u1")
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), 1, list[0].ApplicationsCount)
}

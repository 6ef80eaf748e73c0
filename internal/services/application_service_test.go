package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruitcrm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	appRepo *MockApplicationRepository
	jobRepo *MockJobRepository
	service ApplicationService
	ctx     context.Context
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.appRepo = &MockApplicationRepository{}
	suite.jobRepo = &MockJobRepository{}
	suite.appRepo.Test(suite.T())
	suite.jobRepo.Test(suite.T())
	suite.service = NewApplicationService(suite.appRepo, suite.jobRepo, newRecordingCache())
	suite.ctx = context.Background()
}

func (suite *ApplicationServiceTestSuite) TearDownTest() {
	suite.appRepo.AssertExpectations(suite.T())
	suite.jobRepo.AssertExpectations(suite.T())
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}

func (suite *ApplicationServiceTestSuite) TestCreate_Success() {
	app := &models.Application{CandidateID: "cand1", JobID: "job1", ClientID: "client1"}
	suite.appRepo.On("ExistsFor", suite.ctx, "u1", "cand1", "job1").Return(false, nil)
	suite.appRepo.On("Create", suite.ctx, app).Return(nil)
	suite.jobRepo.On("IncrementApplicationsCount", suite.ctx, "u1", "job1").Return(nil)

	err := suite.service.Create(suite.ctx, "u1", app)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), app.ID)
	assert.Equal(suite.T(), models.ApplicationStatusNew, app.Status)
	assert.False(suite.T(), app.AppliedAt.IsZero())
	assert.Len(suite.T(), app.StatusHistory, 1)
	assert.Equal(suite.T(), "Application created", app.StatusHistory[0].Notes)
	assert.Equal(suite.T(), models.ApplicationStatusNew, app.StatusHistory[0].Status)
}

func (suite *ApplicationServiceTestSuite) TestCreate_KeepsSuppliedAppliedAt() {
	applied := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	app := &models.Application{CandidateID: "cand1", JobID: "job1", ClientID: "client1", AppliedAt: applied}
	suite.appRepo.On("ExistsFor", suite.ctx, "u1", "cand1", "job1").Return(false, nil)
	suite.appRepo.On("Create", suite.ctx, app).Return(nil)
	suite.jobRepo.On("IncrementApplicationsCount", suite.ctx, "u1", "job1").Return(errors.New("boom"))

	// a failed counter increment does not fail the create
	assert.NoError(suite.T(), suite.service.Create(suite.ctx, "u1", app))
	assert.Equal(suite.T(), applied, app.AppliedAt)
}

func (suite *ApplicationServiceTestSuite) TestCreate_Duplicate() {
	app := &models.Application{CandidateID: "cand1", JobID: "job1", ClientID: "client1"}
	suite.appRepo.On("ExistsFor", suite.ctx, "u1", "cand1", "job1").Return(true, nil)

	err := suite.service.Create(suite.ctx, "u1", app)

	assert.Equal(suite.T(), ErrConflict, err)
	suite.appRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestCreate_RequiresReferences() {
	tests := []struct {
		name  string
		app   *models.Application
		field string
	}{
		{"candidate", &models.Application{JobID: "j", ClientID: "c"}, "candidateId"},
		{"job", &models.Application{CandidateID: "x", ClientID: "c"}, "jobId"},
		{"client", &models.Application{CandidateID: "x", JobID: "j"}, "clientId"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.service.Create(suite.ctx, "u1", tt.app)
			var verr *ValidationError
			assert.True(suite.T(), errors.As(err, &verr))
			assert.Contains(suite.T(), verr.Details, tt.field)
		})
	}
}

func (suite *ApplicationServiceTestSuite) TestUpdate_AppendsOneEntryPerStatusChange() {
	now := time.Now().UTC()
	app := &models.Application{
		ID: "a1", TenantID: "u1", Status: models.ApplicationStatusNew, Notes: "initial",
		StatusHistory: []models.StatusHistoryEntry{{Status: models.ApplicationStatusNew, Timestamp: now, Notes: "Application created"}},
	}
	suite.appRepo.On("GetByID", suite.ctx, "a1").Return(app, nil)
	suite.appRepo.On("Update", suite.ctx, mock.Anything).Return(nil)

	statuses := []string{models.ApplicationStatusScreening, models.ApplicationStatusInterviewing, models.ApplicationStatusOffered}
	var updated *models.Application
	for _, status := range statuses {
		status := status
		var err error
		updated, err = suite.service.Update(suite.ctx, "u1", "a1", models.ApplicationPatch{Status: &status})
		assert.NoError(suite.T(), err)
	}

	assert.Len(suite.T(), updated.StatusHistory, len(statuses)+1)
	assert.Equal(suite.T(), models.ApplicationStatusOffered, updated.Status)
	assert.Equal(suite.T(), "Status updated to Offered", updated.StatusHistory[3].Notes)
	assert.Equal(suite.T(), "initial", updated.Notes)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_NotesOnEntryAndDocument() {
	app := &models.Application{ID: "a1", TenantID: "u1", Status: models.ApplicationStatusNew}
	suite.appRepo.On("GetByID", suite.ctx, "a1").Return(app, nil)
	suite.appRepo.On("Update", suite.ctx, mock.Anything).Return(nil)

	status, notes := models.ApplicationStatusRejected, "Not a fit"
	updated, err := suite.service.Update(suite.ctx, "u1", "a1", models.ApplicationPatch{Status: &status, Notes: &notes})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Not a fit", updated.Notes)
	assert.Equal(suite.T(), "Not a fit", updated.StatusHistory[len(updated.StatusHistory)-1].Notes)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_ForeignTenantIsForbidden() {
	suite.appRepo.On("GetByID", suite.ctx, "a1").Return(&models.Application{ID: "a1", TenantID: "u2"}, nil)

	status := models.ApplicationStatusHired
	_, err := suite.service.Update(suite.ctx, "u1", "a1", models.ApplicationPatch{Status: &status})
	assert.Equal(suite.T(), ErrForbidden, err)
}

func (suite *ApplicationServiceTestSuite) TestUpdate_InvalidStatus() {
	suite.appRepo.On("GetByID", suite.ctx, "a1").Return(&models.Application{ID: "a1", TenantID: "u1"}, nil)

	status := "Ghosted"
	_, err := suite.service.Update(suite.ctx, "u1", "a1", models.ApplicationPatch{Status: &status})
	var verr *ValidationError
	assert.True(suite.T(), errors.As(err, &verr))
}

func (suite *ApplicationServiceTestSuite) TestList_PassesFilters() {
	filter := models.ApplicationFilter{JobID: "job1"}
	suite.appRepo.On("List", suite.ctx, "u1", filter).Return([]*models.Application{}, nil)

	list, err := suite.service.List(suite.ctx, "u1", models.ApplicationFilter{JobID: " job1 "})
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), list)
}

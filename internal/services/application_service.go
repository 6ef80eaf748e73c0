package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/common"
	"recruitcrm/internal/models"
	"recruitcrm/internal/repositories"

	"github.com/google/uuid"
)

const applicationCreatedNote = "Application created"

type ApplicationService interface {
	List(ctx context.Context, tenantID string, filter models.ApplicationFilter) ([]*models.Application, error)
	Create(ctx context.Context, tenantID string, app *models.Application) error
	Update(ctx context.Context, tenantID, id string, patch models.ApplicationPatch) (*models.Application, error)
}

type applicationService struct {
	appRepo repositories.ApplicationRepository
	jobRepo repositories.JobRepository
	cache   caching.CacheService
}

func NewApplicationService(appRepo repositories.ApplicationRepository, jobRepo repositories.JobRepository, cache caching.CacheService) ApplicationService {
	return &applicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
		cache:   cache,
	}
}

func (s *applicationService) List(ctx context.Context, tenantID string, filter models.ApplicationFilter) ([]*models.Application, error) {
	filter = models.ApplicationFilter{
		JobID:       strings.TrimSpace(filter.JobID),
		ClientID:    strings.TrimSpace(filter.ClientID),
		CandidateID: strings.TrimSpace(filter.CandidateID),
	}
	variant := url.Values{
		"job":       {filter.JobID},
		"client":    {filter.ClientID},
		"candidate": {filter.CandidateID},
	}.Encode()
	return cachedList(ctx, s.cache, tenantID, resourceApplications, variant, func() ([]*models.Application, error) {
		return s.appRepo.List(ctx, tenantID, filter)
	})
}

// Create inserts an application unless the candidate already applied to the job.
// The existence check and insert are not atomic.
func (s *applicationService) Create(ctx context.Context, tenantID string, app *models.Application) error {
	app.CandidateID = strings.TrimSpace(app.CandidateID)
	app.JobID = strings.TrimSpace(app.JobID)
	app.ClientID = strings.TrimSpace(app.ClientID)
	required := []struct{ field, value string }{
		{"candidateId", app.CandidateID},
		{"jobId", app.JobID},
		{"clientId", app.ClientID},
	}
	for _, r := range required {
		if r.value == "" {
			return newValidationError(r.field, "is required")
		}
	}
	app.Status = common.TrimmedOr(app.Status, models.ApplicationStatusNew)
	if !models.ValidApplicationStatus(app.Status) {
		return newValidationError("status", "is not an allowed value")
	}

	exists, err := s.appRepo.ExistsFor(ctx, tenantID, app.CandidateID, app.JobID)
	if err != nil {
		return err
	}
	if exists {
		duplicateApplications.Inc()
		return ErrConflict
	}

	now := time.Now().UTC()
	app.ID = uuid.NewString()
	app.TenantID = tenantID
	app.Notes = strings.TrimSpace(app.Notes)
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	app.StatusHistory = []models.StatusHistoryEntry{
		{Status: app.Status, Timestamp: now, Notes: applicationCreatedNote},
	}
	app.CreatedAt = now
	app.UpdatedAt = now

	if err := s.appRepo.Create(ctx, app); err != nil {
		return err
	}
	recordWrite(resourceApplications, "create")
	invalidate(ctx, s.cache, tenantID, resourceApplications)

	// applications_count is repaired by the reconciler when this fails
	if err := s.jobRepo.IncrementApplicationsCount(ctx, tenantID, app.JobID); err != nil {
		common.LoggerFromContext(ctx).WithError(err).WithField("job_id", app.JobID).Warn("failed to increment applications_count")
	} else {
		invalidate(ctx, s.cache, tenantID, resourceJobs)
	}
	return nil
}

func (s *applicationService) Update(ctx context.Context, tenantID, id string, patch models.ApplicationPatch) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if app, err = authorize(app, err, tenantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	notes := ""
	if patch.Notes != nil {
		notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.Status != nil {
		status := strings.TrimSpace(*patch.Status)
		if !models.ValidApplicationStatus(status) {
			return nil, newValidationError("status", "is not an allowed value")
		}
		entryNotes := notes
		if entryNotes == "" {
			entryNotes = "Status updated to " + status
		}
		app.Status = status
		app.StatusHistory = append(app.StatusHistory, models.StatusHistoryEntry{
			Status:    status,
			Timestamp: now,
			Notes:     entryNotes,
		})
	}
	if notes != "" {
		app.Notes = notes
	}
	app.UpdatedAt = now

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, translateWrite(err)
	}
	recordWrite(resourceApplications, "update")
	invalidate(ctx, s.cache, tenantID, resourceApplications)
	return app, nil
}

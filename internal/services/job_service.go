package services

import (
	"context"
	"strings"
	"time"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/common"
	"recruitcrm/internal/models"
	"recruitcrm/internal/repositories"

	"github.com/google/uuid"
)

type JobService interface {
	Create(ctx context.Context, tenantID string, job *models.Job) error
	Update(ctx context.Context, tenantID, id string, patch models.JobPatch) (*models.Job, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string) ([]*models.Job, error)
	// RecountApplications repairs applications_count for every job
	RecountApplications(ctx context.Context) (int64, error)
}

type jobService struct {
	jobRepo repositories.JobRepository
	cache   caching.CacheService
}

func NewJobService(jobRepo repositories.JobRepository, cache caching.CacheService) JobService {
	return &jobService{
		jobRepo: jobRepo,
		cache:   cache,
	}
}

func normalizeDeadline(deadline *string) (*string, error) {
	if deadline == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*deadline)
	if v == "" {
		return nil, nil
	}
	if err := common.ValidateDateFormat(v, "deadline"); err != nil {
		return nil, newValidationError("deadline", err.Error())
	}
	return &v, nil
}

func validateJob(job *models.Job) error {
	if job.Title == "" {
		return newValidationError("title", "is required")
	}
	if !models.ValidJobType(job.Type) {
		return newValidationError("type", "must be one of Full-time, Part-time, Contract, Internship")
	}
	if !models.ValidJobStatus(job.Status) {
		return newValidationError("status", "must be one of Open, Interviewing, On Hold, Filled, Cancelled, Closed")
	}
	return nil
}

func (s *jobService) Create(ctx context.Context, tenantID string, job *models.Job) error {
	job.Title = strings.TrimSpace(job.Title)
	job.ClientID = strings.TrimSpace(job.ClientID)
	if job.ClientID == "" {
		return newValidationError("client_id", "is required")
	}
	job.Type = common.TrimmedOr(job.Type, models.JobTypeFullTime)
	job.Status = common.TrimmedOr(job.Status, models.JobStatusOpen)
	if err := validateJob(job); err != nil {
		return err
	}
	deadline, err := normalizeDeadline(job.Deadline)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	job.ID = uuid.NewString()
	job.TenantID = tenantID
	job.Deadline = deadline
	job.ApplicationsCount = 0
	job.PostedDate = now
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return err
	}
	recordWrite(resourceJobs, "create")
	invalidate(ctx, s.cache, tenantID, resourceJobs)
	return nil
}

func (s *jobService) Update(ctx context.Context, tenantID, id string, patch models.JobPatch) (*models.Job, error) {
	job, err := s.owned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	apply(&job.ClientID, patch.ClientID)
	apply(&job.Title, patch.Title)
	apply(&job.Description, patch.Description)
	apply(&job.Location, patch.Location)
	apply(&job.Type, patch.Type)
	apply(&job.Status, patch.Status)
	if patch.SalaryMin.Set {
		job.SalaryMin = patch.SalaryMin.Value
	}
	if patch.SalaryMax.Set {
		job.SalaryMax = patch.SalaryMax.Value
	}
	if patch.Deadline != nil {
		if job.Deadline, err = normalizeDeadline(patch.Deadline); err != nil {
			return nil, err
		}
	}
	if job.ClientID == "" {
		return nil, newValidationError("client_id", "cannot be empty")
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, translateWrite(err)
	}
	recordWrite(resourceJobs, "update")
	invalidate(ctx, s.cache, tenantID, resourceJobs)
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.owned(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, tenantID, id); err != nil {
		return translateWrite(err)
	}
	recordWrite(resourceJobs, "delete")
	invalidate(ctx, s.cache, tenantID, resourceJobs)
	return nil
}

func (s *jobService) List(ctx context.Context, tenantID string) ([]*models.Job, error) {
	return cachedList(ctx, s.cache, tenantID, resourceJobs, "all", func() ([]*models.Job, error) {
		return s.jobRepo.List(ctx, tenantID)
	})
}

func (s *jobService) RecountApplications(ctx context.Context) (int64, error) {
	tenants, err := s.jobRepo.RecountApplications(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(tenants))
	for _, tenantID := range tenants {
		recordWrite(resourceJobs, "recount")
		if _, ok := seen[tenantID]; ok {
			continue
		}
		seen[tenantID] = struct{}{}
		invalidate(ctx, s.cache, tenantID, resourceJobs)
	}
	return int64(len(tenants)), nil
}

func (s *jobService) owned(ctx context.Context, tenantID, id string) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	return authorize(job, err, tenantID)
}

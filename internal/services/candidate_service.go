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

type CandidateService interface {
	Create(ctx context.Context, tenantID string, candidate *models.Candidate) error
	Update(ctx context.Context, tenantID, id string, patch models.CandidatePatch) (*models.Candidate, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string) ([]*models.Candidate, error)
}

type candidateService struct {
	candidateRepo repositories.CandidateRepository
	cache         caching.CacheService
}

func NewCandidateService(candidateRepo repositories.CandidateRepository, cache caching.CacheService) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		cache:         cache,
	}
}

func validateCandidate(c *models.Candidate) error {
	if c.FullName == "" {
		return newValidationError("full_name", "is required")
	}
	if c.Email == "" {
		return newValidationError("email", "is required")
	}
	if c.ExperienceYears < 0 {
		return newValidationError("experience_years", "must be at least 0")
	}
	return nil
}

func (s *candidateService) Create(ctx context.Context, tenantID string, candidate *models.Candidate) error {
	candidate.FullName = strings.TrimSpace(candidate.FullName)
	candidate.Email = strings.TrimSpace(candidate.Email)
	candidate.Status = common.TrimmedOr(candidate.Status, models.CandidateStatusNew)
	if err := validateCandidate(candidate); err != nil {
		return err
	}

	now := time.Now().UTC()
	candidate.ID = uuid.NewString()
	candidate.TenantID = tenantID
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		return err
	}
	recordWrite(resourceCandidates, "create")
	invalidate(ctx, s.cache, tenantID, resourceCandidates)
	return nil
}

func (s *candidateService) Update(ctx context.Context, tenantID, id string, patch models.CandidatePatch) (*models.Candidate, error) {
	candidate, err := s.owned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	apply(&candidate.FullName, patch.FullName)
	apply(&candidate.Email, patch.Email)
	apply(&candidate.Phone, patch.Phone)
	apply(&candidate.Position, patch.Position)
	apply(&candidate.Location, patch.Location)
	apply(&candidate.Status, patch.Status)
	apply(&candidate.Notes, patch.Notes)
	apply(&candidate.Client, patch.Client)
	apply(&candidate.Role, patch.Role)
	if patch.ExperienceYears != nil {
		candidate.ExperienceYears = *patch.ExperienceYears
	}
	if patch.Rating != nil {
		candidate.Rating = *patch.Rating
	}
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}
	candidate.UpdatedAt = time.Now().UTC()

	if err := s.candidateRepo.Update(ctx, candidate); err != nil {
		return nil, translateWrite(err)
	}
	recordWrite(resourceCandidates, "update")
	invalidate(ctx, s.cache, tenantID, resourceCandidates)
	return candidate, nil
}

func (s *candidateService) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.owned(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.candidateRepo.Delete(ctx, tenantID, id); err != nil {
		return translateWrite(err)
	}
	recordWrite(resourceCandidates, "delete")
	invalidate(ctx, s.cache, tenantID, resourceCandidates)
	return nil
}

func (s *candidateService) List(ctx context.Context, tenantID string) ([]*models.Candidate, error) {
	return cachedList(ctx, s.cache, tenantID, resourceCandidates, "all", func() ([]*models.Candidate, error) {
		return s.candidateRepo.List(ctx, tenantID)
	})
}

func (s *candidateService) owned(ctx context.Context, tenantID, id string) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, id)
	return authorize(candidate, err, tenantID)
}

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

// SheetService manages the display rows of candidate sheets
type SheetService interface {
	List(ctx context.Context, tenantID, clientName, jobTitle string) ([]*models.SheetCandidate, error)
	Create(ctx context.Context, tenantID string, row *models.SheetCandidate) error
	Update(ctx context.Context, tenantID, id string, patch models.SheetCandidatePatch) (*models.SheetCandidate, error)
}

type sheetService struct {
	sheetRepo repositories.SheetCandidateRepository
	cache     caching.CacheService
}

func NewSheetService(sheetRepo repositories.SheetCandidateRepository, cache caching.CacheService) SheetService {
	return &sheetService{
		sheetRepo: sheetRepo,
		cache:     cache,
	}
}

func (s *sheetService) List(ctx context.Context, tenantID, clientName, jobTitle string) ([]*models.SheetCandidate, error) {
	clientName, jobTitle = strings.TrimSpace(clientName), strings.TrimSpace(jobTitle)
	if clientName == "" || jobTitle == "" {
		return nil, &ValidationError{
			Message: "clientName and jobTitle are required",
			Details: map[string]string{"clientName": "is required", "jobTitle": "is required"},
		}
	}
	variant := url.Values{"client": {clientName}, "job": {jobTitle}}.Encode()
	return cachedList(ctx, s.cache, tenantID, resourceSheets, variant, func() ([]*models.SheetCandidate, error) {
		return s.sheetRepo.ListBySheet(ctx, tenantID, clientName, jobTitle)
	})
}

func (s *sheetService) Create(ctx context.Context, tenantID string, row *models.SheetCandidate) error {
	row.CandidateName = strings.TrimSpace(row.CandidateName)
	row.Email = strings.TrimSpace(row.Email)
	row.ClientName = strings.TrimSpace(row.ClientName)
	row.JobTitle = strings.TrimSpace(row.JobTitle)
	required := []struct{ field, value string }{
		{"candidateName", row.CandidateName},
		{"email", row.Email},
		{"clientName", row.ClientName},
		{"jobTitle", row.JobTitle},
	}
	for _, r := range required {
		if r.value == "" {
			return newValidationError(r.field, "is required")
		}
	}
	row.Status = common.TrimmedOr(row.Status, models.SheetStatusNew)
	if !models.ValidSheetStatus(row.Status) {
		return newValidationError("status", "is not an allowed value")
	}

	now := time.Now().UTC()
	row.ID = uuid.NewString()
	row.TenantID = tenantID
	row.SheetName = models.SheetName(row.ClientName, row.JobTitle)
	row.CreatedAt = now
	row.UpdatedAt = now

	if err := s.sheetRepo.Create(ctx, row); err != nil {
		return err
	}
	recordWrite(resourceSheets, "create")
	invalidate(ctx, s.cache, tenantID, resourceSheets)
	return nil
}

func (s *sheetService) Update(ctx context.Context, tenantID, id string, patch models.SheetCandidatePatch) (*models.SheetCandidate, error) {
	row, err := s.sheetRepo.GetByID(ctx, id)
	if row, err = authorize(row, err, tenantID); err != nil {
		return nil, err
	}

	apply(&row.CandidateName, patch.CandidateName)
	apply(&row.Email, patch.Email)
	apply(&row.Status, patch.Status)
	if !models.ValidSheetStatus(row.Status) {
		return nil, newValidationError("status", "is not an allowed value")
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.sheetRepo.Update(ctx, row); err != nil {
		return nil, translateWrite(err)
	}
	recordWrite(resourceSheets, "update")
	invalidate(ctx, s.cache, tenantID, resourceSheets)
	return row, nil
}

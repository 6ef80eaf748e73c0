package services

import (
	"context"
	"strings"
	"time"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/models"
	"recruitcrm/internal/repositories"

	"github.com/google/uuid"
)

type ClientService interface {
	Create(ctx context.Context, tenantID string, client *models.Client) error
	Update(ctx context.Context, tenantID, id string, patch models.ClientPatch) (*models.Client, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string) ([]*models.Client, error)
}

type clientService struct {
	clientRepo repositories.ClientRepository
	cache      caching.CacheService
}

func NewClientService(clientRepo repositories.ClientRepository, cache caching.CacheService) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		cache:      cache,
	}
}

func (s *clientService) Create(ctx context.Context, tenantID string, client *models.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return newValidationError("name", "is required")
	}
	client.Status = strings.TrimSpace(client.Status)
	if client.Status == "" {
		client.Status = models.ClientStatusCold
	}
	if !models.ValidClientStatus(client.Status) {
		return newValidationError("status", "must be one of Active, Warm, Cold")
	}

	now := time.Now().UTC()
	client.ID = uuid.NewString()
	client.TenantID = tenantID
	client.CreatedAt = now
	client.UpdatedAt = now

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return err
	}
	recordWrite(resourceClients, "create")
	invalidate(ctx, s.cache, tenantID, resourceClients)
	return nil
}

func (s *clientService) Update(ctx context.Context, tenantID, id string, patch models.ClientPatch) (*models.Client, error) {
	client, err := s.owned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	apply(&client.Name, patch.Name)
	apply(&client.Industry, patch.Industry)
	apply(&client.Email, patch.Email)
	apply(&client.Phone, patch.Phone)
	apply(&client.Website, patch.Website)
	apply(&client.Location, patch.Location)
	apply(&client.Status, patch.Status)
	apply(&client.EmployeesRange, patch.EmployeesRange)
	apply(&client.RevenueRange, patch.RevenueRange)
	apply(&client.Notes, patch.Notes)
	if client.Name == "" {
		return nil, newValidationError("name", "cannot be empty")
	}
	if !models.ValidClientStatus(client.Status) {
		return nil, newValidationError("status", "must be one of Active, Warm, Cold")
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, translateWrite(err)
	}
	recordWrite(resourceClients, "update")
	invalidate(ctx, s.cache, tenantID, resourceClients)
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.owned(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, tenantID, id); err != nil {
		return translateWrite(err)
	}
	recordWrite(resourceClients, "delete")
	invalidate(ctx, s.cache, tenantID, resourceClients)
	return nil
}

func (s *clientService) List(ctx context.Context, tenantID string) ([]*models.Client, error) {
	return cachedList(ctx, s.cache, tenantID, resourceClients, "all", func() ([]*models.Client, error) {
		return s.clientRepo.List(ctx, tenantID)
	})
}

func (s *clientService) owned(ctx context.Context, tenantID, id string) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	return authorize(client, err, tenantID)
}

package handlers

import (
	"context"

	"recruitcrm/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Create(ctx context.Context, tenantID string, client *models.Client) error {
	args := m.Called(ctx, tenantID, client)
	return args.Error(0)
}

func (m *MockClientService) Update(ctx context.Context, tenantID, id string, patch models.ClientPatch) (*models.Client, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockClientService) List(ctx context.Context, tenantID string) ([]*models.Client, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Client), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) List(ctx context.Context, tenantID string, filter models.ApplicationFilter) ([]*models.Application, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationService) Create(ctx context.Context, tenantID string, app *models.Application) error {
	args := m.Called(ctx, tenantID, app)
	return args.Error(0)
}

func (m *MockApplicationService) Update(ctx context.Context, tenantID, id string, patch models.ApplicationPatch) (*models.Application, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

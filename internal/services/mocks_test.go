package services

import (
	"context"
	"io"
	"time"

	"recruitcrm/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockClientRepository) List(ctx context.Context, tenantID string) ([]*models.Client, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Client), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) List(ctx context.Context, tenantID string, filter models.ApplicationFilter) ([]*models.Application, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ExistsFor(ctx context.Context, tenantID, candidateID, jobID string) (bool, error) {
	args := m.Called(ctx, tenantID, candidateID, jobID)
	return args.Bool(0), args.Error(1)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockJobRepository) List(ctx context.Context, tenantID string) ([]*models.Job, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Job), args.Error(1)
}

func (m *MockJobRepository) IncrementApplicationsCount(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockJobRepository) RecountApplications(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]string)
	return tenants, args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockObjectStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingCache is an in-process CacheService used to observe list caching
type recordingCache struct {
	lists       map[string][]byte
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{lists: make(map[string][]byte)}
}

func (c *recordingCache) GetVerifiedToken(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (c *recordingCache) SetVerifiedToken(context.Context, string, string, time.Duration) error {
	return nil
}

func (c *recordingCache) GetList(_ context.Context, tenantID, resource, variant string) ([]byte, string, bool, error) {
	data, ok := c.lists[tenantID+"|"+resource+"|"+variant]
	return data, "1", ok, nil
}

func (c *recordingCache) SetList(_ context.Context, tenantID, resource, _, variant string, data []byte, _ time.Duration) error {
	c.lists[tenantID+"|"+resource+"|"+variant] = data
	return nil
}

func (c *recordingCache) InvalidateResource(_ context.Context, tenantID, resource string) error {
	c.invalidated = append(c.invalidated, tenantID+"|"+resource)
	prefix := tenantID + "|" + resource + "|"
	for k := range c.lists {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.lists, k)
		}
	}
	return nil
}

func (c *recordingCache) Ping(context.Context) error { return nil }

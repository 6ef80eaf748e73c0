package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/models"
	"recruitcrm/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newSheetService() SheetService {
	return NewSheetService(repositories.NewMemoryStore().SheetCandidates, caching.NewNoopCacheService())
}

func TestSheetService_CreateDerivesSheetName(t *testing.T) {
	service := newSheetService()
	ctx := context.Background()

	row := &models.SheetCandidate{CandidateName: "Ada", Email: "ada@example.com", ClientName: "Acme", JobTitle: "Dev"}
	require.NoError(t, service.Create(ctx, "u1", row))

	assert.Equal(t, "Acme_Dev", row.SheetName)
	assert.Equal(t, models.SheetStatusNew, row.Status)

	rows, err := service.List(ctx, "u1", "Acme", "Dev")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row.ID, rows[0].ID)

	other, err := service.List(ctx, "u1", "Acme", "QA")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSheetService_ListRequiresClientAndJob(t *testing.T) {
	_, err := newSheetService().List(context.Background(), "u1", "Acme", "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "clientName and jobTitle are required", verr.Message)
}

func TestSheetService_CreateRequiresFields(t *testing.T) {
	err := newSheetService().Create(context.Background(), "u1", &models.SheetCandidate{CandidateName: "Ada", ClientName: "Acme", JobTitle: "Dev"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Details, "email")
}

func TestSheetService_UpdateOnlySuppliedFields(t *testing.T) {
	service := newSheetService()
	ctx := context.Background()
	row := &models.SheetCandidate{CandidateName: "Ada", Email: "ada@example.com", ClientName: "Acme", JobTitle: "Dev"}
	require.NoError(t, service.Create(ctx, "u1", row))

	updated, err := service.Update(ctx, "u1", row.ID, models.SheetCandidatePatch{Status: strPtr(models.SheetStatusNotInterested)})
	require.NoError(t, err)
	assert.Equal(t, models.SheetStatusNotInterested, updated.Status)
	assert.Equal(t, "Ada", updated.CandidateName)

	_, err = service.Update(ctx, "u2", row.ID, models.SheetCandidatePatch{Status: strPtr(models.SheetStatusHired)})
	assert.Equal(t, ErrForbidden, err)
}

func TestExportService_StreamsWorkbook(t *testing.T) {
	sheets := newSheetService()
	ctx := context.Background()
	require.NoError(t, sheets.Create(ctx, "u1", &models.SheetCandidate{CandidateName: "Ada", Email: "ada@example.com", ClientName: "Acme", JobTitle: "Dev"}))

	export, err := NewExportService(sheets, nil).ExportSheet(ctx, "u1", "Acme", "Dev", true)
	require.NoError(t, err)
	assert.Equal(t, 1, export.Rows)
	assert.Empty(t, export.URL)
	assert.Contains(t, export.FileName, "Acme_Dev-")

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Acme Dev")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Candidate Name", rows[0][0])
	assert.Equal(t, "ada@example.com", rows[1][1])
}

func TestExportService_UploadsAndPresigns(t *testing.T) {
	sheets := newSheetService()
	storage := &MockObjectStorage{}
	ctx := context.Background()
	storage.On("Upload", ctx, mock.MatchedBy(func(name string) bool {
		return len(name) > 3 && name[:3] == "u1/"
	}), mock.Anything, mock.AnythingOfType("int64"), xlsxContentType).Return(nil)
	storage.On("PresignedURL", ctx, mock.Anything, exportURLExpiry).Return("https://files.example.com/export.xlsx", nil)

	export, err := NewExportService(sheets, storage).ExportSheet(ctx, "u1", "Acme", "Dev", true)
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/export.xlsx", export.URL)
	assert.Equal(t, 0, export.Rows)
	storage.AssertExpectations(t)
}

func TestSheetTabName(t *testing.T) {
	assert.Equal(t, "Acme- Dev-Ops", sheetTabName("Acme: Dev/Ops"))
	assert.Equal(t, "Candidates", sheetTabName("  "))
	assert.Len(t, []rune(sheetTabName("a very long client name with a very long job title")), 31)
}

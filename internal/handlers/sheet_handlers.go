package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"recruitcrm/internal/models"
	"recruitcrm/internal/services"

	"github.com/labstack/echo/v4"
)

// SheetHandlers serves the rows of (client, job) candidate sheets
type SheetHandlers struct {
	sheetService  services.SheetService
	exportService services.ExportService
}

func NewSheetHandlers(sheetService services.SheetService, exportService services.ExportService) *SheetHandlers {
	return &SheetHandlers{
		sheetService:  sheetService,
		exportService: exportService,
	}
}

type SheetQuery struct {
	ClientName string `query:"clientName"`
	JobTitle   string `query:"jobTitle"`
}

type CreateSheetCandidateRequest struct {
	CandidateName string `json:"candidateName" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Status        string `json:"status" validate:"sheet_status"`
	ClientName    string `json:"clientName" validate:"required"`
	JobTitle      string `json:"jobTitle" validate:"required"`
}

// UpdateSheetCandidateRequest carries the row id in the body
type UpdateSheetCandidateRequest struct {
	ID string `json:"id" validate:"required"`
	models.SheetCandidatePatch
}

// SheetExportResponse is returned when the workbook was stored in object storage
type SheetExportResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Rows     int    `json:"rows"`
}

// ListSheetCandidates returns the rows of one sheet
//
//	@Summary	List candidate sheet rows
//	@Tags		candidate-sheet
//	@Produce	json
//	@Param		clientName	query	string	true	"Client name"
//	@Param		jobTitle	query	string	true	"Job title"
//	@Success	200			{array}	models.SheetCandidate
//	@Router		/candidates/sheet [get]
func (h *SheetHandlers) ListSheetCandidates(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	query := SheetQuery{
		ClientName: c.QueryParam("clientName"),
		JobTitle:   c.QueryParam("jobTitle"),
	}
	rows, err := h.sheetService.List(c.Request().Context(), tenantID, query.ClientName, query.JobTitle)
	if err != nil {
		return respondError(c, err, "Sheet candidate")
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *SheetHandlers) CreateSheetCandidate(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var req CreateSheetCandidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "Sheet candidate")
	}

	row := &models.SheetCandidate{
		CandidateName: req.CandidateName,
		Email:         req.Email,
		Status:        req.Status,
		ClientName:    req.ClientName,
		JobTitle:      req.JobTitle,
	}
	if err := h.sheetService.Create(c.Request().Context(), tenantID, row); err != nil {
		return respondError(c, err, "Sheet candidate")
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *SheetHandlers) UpdateSheetCandidate(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var req UpdateSheetCandidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "Sheet candidate")
	}

	row, err := h.sheetService.Update(c.Request().Context(), tenantID, req.ID, req.SheetCandidatePatch)
	if err != nil {
		return respondError(c, err, "Sheet candidate")
	}
	return c.JSON(http.StatusOK, row)
}

// ExportSheet renders a sheet as XLSX. With object storage configured the
// workbook is uploaded and a presigned link returned unless download=true.
//
//	@Summary	Export candidate sheet
//	@Tags		candidate-sheet
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		clientName	query	string	true	"Client name"
//	@Param		jobTitle	query	string	true	"Job title"
//	@Param		download	query	bool	false	"Stream the file instead of uploading"
//	@Router		/candidates/sheet/export [get]
func (h *SheetHandlers) ExportSheet(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	download, _ := strconv.ParseBool(c.QueryParam("download"))
	export, err := h.exportService.ExportSheet(
		c.Request().Context(),
		tenantID,
		c.QueryParam("clientName"),
		c.QueryParam("jobTitle"),
		!download,
	)
	if err != nil {
		return respondError(c, err, "Sheet")
	}

	if export.URL != "" && !download {
		return c.JSON(http.StatusOK, SheetExportResponse{
			URL:      export.URL,
			FileName: export.FileName,
			Rows:     export.Rows,
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Blob(http.StatusOK, export.ContentType, export.Content)
}

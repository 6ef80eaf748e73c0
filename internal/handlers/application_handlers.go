package handlers

import (
	"net/http"
	"strings"
	"time"

	"recruitcrm/internal/common"
	"recruitcrm/internal/models"
	"recruitcrm/internal/services"

	"github.com/labstack/echo/v4"
)

type ApplicationHandlers struct {
	applicationService services.ApplicationService
}

func NewApplicationHandlers(applicationService services.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{applicationService: applicationService}
}

type CreateApplicationRequest struct {
	CandidateID string `json:"candidateId" validate:"required"`
	JobID       string `json:"jobId" validate:"required"`
	ClientID    string `json:"clientId" validate:"required"`
	Status      string `json:"status" validate:"application_status"`
	Notes       string `json:"notes"`
	// AppliedAt is YYYY-MM-DD or RFC 3339; defaults to now
	AppliedAt string `json:"appliedAt"`
}

type UpdateApplicationRequest struct {
	ID string `json:"id" validate:"required"`
	models.ApplicationPatch
}

// ListApplications returns the caller's applications, optionally filtered
//
//	@Summary	List applications
//	@Tags		applications
//	@Produce	json
//	@Param		jobId		query	string	false	"Job id"
//	@Param		clientId	query	string	false	"Client id"
//	@Param		candidateId	query	string	false	"Candidate id"
//	@Success	200			{array}	models.Application
//	@Router		/applications [get]
func (h *ApplicationHandlers) ListApplications(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	filter := models.ApplicationFilter{
		JobID:       strings.TrimSpace(c.QueryParam("jobId")),
		ClientID:    strings.TrimSpace(c.QueryParam("clientId")),
		CandidateID: strings.TrimSpace(c.QueryParam("candidateId")),
	}
	apps, err := h.applicationService.List(c.Request().Context(), tenantID, filter)
	if err != nil {
		return respondError(c, err, "Application")
	}
	return c.JSON(http.StatusOK, apps)
}

// CreateApplication rejects a second application of a candidate to the same job with 409
func (h *ApplicationHandlers) CreateApplication(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var req CreateApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "Application")
	}

	app := &models.Application{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		ClientID:    req.ClientID,
		Status:      req.Status,
		Notes:       req.Notes,
	}
	if applied := strings.TrimSpace(req.AppliedAt); applied != "" {
		at, err := parseAppliedAt(applied)
		if err != nil {
			return common.SendValidationError(c, "Validation failed", map[string]string{"appliedAt": err.Error()})
		}
		app.AppliedAt = at
	}

	if err := h.applicationService.Create(c.Request().Context(), tenantID, app); err != nil {
		return respondError(c, err, "Application")
	}
	return c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandlers) UpdateApplication(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var req UpdateApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "Application")
	}

	app, err := h.applicationService.Update(c.Request().Context(), tenantID, req.ID, req.ApplicationPatch)
	if err != nil {
		return respondError(c, err, "Application")
	}
	return c.JSON(http.StatusOK, app)
}

func parseAppliedAt(value string) (time.Time, error) {
	if err := common.ValidateDateFormat(value, "appliedAt"); err != nil {
		return time.Time{}, err
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, _ := time.Parse("2006-01-02", value)
	return t.UTC(), nil
}

package handlers

import (
	"net/http"

	"recruitcrm/internal/models"
	"recruitcrm/internal/services"

	"github.com/labstack/echo/v4"
)

type JobHandlers struct {
	jobService services.JobService
}

func NewJobHandlers(jobService services.JobService) *JobHandlers {
	return &JobHandlers{jobService: jobService}
}

// CreateJobRequest represents the job creation payload.
// Salary bounds accept numbers or numeric strings.
type CreateJobRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	ClientID    string             `json:"client_id" validate:"required"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Type        string             `json:"type" validate:"job_type"`
	SalaryMin   models.FlexibleInt `json:"salary_min"`
	SalaryMax   models.FlexibleInt `json:"salary_max"`
	Status      string             `json:"status" validate:"job_status"`
	Deadline    *string            `json:"deadline"`
}

// ListJobs returns every job of the caller
//
//	@Summary	List jobs
//	@Tags		jobs
//	@Produce	json
//	@Success	200	{array}	models.Job
//	@Router		/jobs [get]
func (h *JobHandlers) ListJobs(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	jobs, err := h.jobService.List(c.Request().Context(), tenantID)
	if err != nil {
		return respondError(c, err, "Job")
	}
	return c.JSON(http.StatusOK, jobs)
}

// CreateJob handler
//
//	@Summary	Create job
//	@Tags		jobs
//	@Accept		json
//	@Produce	json
//	@Param		job	body		CreateJobRequest	true	"Job"
//	@Success	201	{object}	models.Job
//	@Router		/jobs [post]
func (h *JobHandlers) CreateJob(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var req CreateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "Job")
	}

	job := &models.Job{
		Title:       req.Title,
		ClientID:    req.ClientID,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		SalaryMin:   req.SalaryMin.Value,
		SalaryMax:   req.SalaryMax.Value,
		Status:      req.Status,
		Deadline:    req.Deadline,
	}
	if err := h.jobService.Create(c.Request().Context(), tenantID, job); err != nil {
		return respondError(c, err, "Job")
	}
	return c.JSON(http.StatusCreated, job)
}

func (h *JobHandlers) UpdateJob(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var patch models.JobPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return respondError(c, err, "Job")
	}

	job, err := h.jobService.Update(c.Request().Context(), tenantID, c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Job")
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandlers) DeleteJob(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	if err := h.jobService.Delete(c.Request().Context(), tenantID, c.Param("id")); err != nil {
		return respondError(c, err, "Job")
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

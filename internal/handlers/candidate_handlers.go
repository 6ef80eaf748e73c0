package handlers

import (
	"net/http"

	"recruitcrm/internal/models"
	"recruitcrm/internal/services"

	"github.com/labstack/echo/v4"
)

type CandidateHandlers struct {
	candidateService services.CandidateService
}

func NewCandidateHandlers(candidateService services.CandidateService) *CandidateHandlers {
	return &CandidateHandlers{candidateService: candidateService}
}

type CreateCandidateRequest struct {
	FullName        string `json:"full_name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone"`
	Position        string `json:"position"`
	Location        string `json:"location"`
	ExperienceYears int    `json:"experience_years" validate:"min=0"`
	Status          string `json:"status"`
	Rating          int    `json:"rating" validate:"min=0,max=5"`
	Notes           string `json:"notes"`
	Client          string `json:"client"`
	Role            string `json:"role"`
}

// ListCandidates returns the caller's talent pool
//
//	@Summary	List candidates
//	@Tags		candidates
//	@Produce	json
//	@Success	200	{array}	models.Candidate
//	@Router		/candidates [get]
func (h *CandidateHandlers) ListCandidates(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	candidates, err := h.candidateService.List(c.Request().Context(), tenantID)
	if err != nil {
		return respondError(c, err, "Candidate")
	}
	return c.JSON(http.StatusOK, candidates)
}

func (h *CandidateHandlers) CreateCandidate(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var req CreateCandidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "Candidate")
	}

	candidate := &models.Candidate{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Position:        req.Position,
		Location:        req.Location,
		ExperienceYears: req.ExperienceYears,
		Status:          req.Status,
		Rating:          req.Rating,
		Notes:           req.Notes,
		Client:          req.Client,
		Role:            req.Role,
	}
	if err := h.candidateService.Create(c.Request().Context(), tenantID, candidate); err != nil {
		return respondError(c, err, "Candidate")
	}
	return c.JSON(http.StatusCreated, candidate)
}

func (h *CandidateHandlers) UpdateCandidate(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var patch models.CandidatePatch
	if err := bindAndValidate(c, &patch); err != nil {
		return respondError(c, err, "Candidate")
	}

	candidate, err := h.candidateService.Update(c.Request().Context(), tenantID, c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Candidate")
	}
	return c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandlers) DeleteCandidate(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	if err := h.candidateService.Delete(c.Request().Context(), tenantID, c.Param("id")); err != nil {
		return respondError(c, err, "Candidate")
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

package handlers

import (
	"net/http"

	"recruitcrm/internal/models"
	"recruitcrm/internal/services"

	"github.com/labstack/echo/v4"
)

// ClientHandlers handles client-related HTTP requests
type ClientHandlers struct {
	clientService services.ClientService
}

// NewClientHandlers creates a new client handlers instance
func NewClientHandlers(clientService services.ClientService) *ClientHandlers {
	return &ClientHandlers{clientService: clientService}
}

// CreateClientRequest represents the client creation request payload
type CreateClientRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Industry       string `json:"industry"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"client_status"`
	EmployeesRange string `json:"employees_range"`
	RevenueRange   string `json:"revenue_range"`
	Notes          string `json:"notes"`
}

// ListClients returns every client of the caller
//
//	@Summary	List clients
//	@Tags		clients
//	@Produce	json
//	@Success	200	{array}	models.Client
//	@Router		/clients [get]
func (h *ClientHandlers) ListClients(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	clients, err := h.clientService.List(c.Request().Context(), tenantID)
	if err != nil {
		return respondError(c, err, "Client")
	}
	return c.JSON(http.StatusOK, clients)
}

// CreateClient handles creating a new client
//
//	@Summary	Create client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		client	body		CreateClientRequest	true	"Client"
//	@Success	201		{object}	models.Client
//	@Router		/clients [post]
func (h *ClientHandlers) CreateClient(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var req CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "Client")
	}

	client := &models.Client{
		Name:           req.Name,
		Industry:       req.Industry,
		Email:          req.Email,
		Phone:          req.Phone,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		EmployeesRange: req.EmployeesRange,
		RevenueRange:   req.RevenueRange,
		Notes:          req.Notes,
	}
	if err := h.clientService.Create(c.Request().Context(), tenantID, client); err != nil {
		return respondError(c, err, "Client")
	}
	return c.JSON(http.StatusCreated, client)
}

// UpdateClient merges the supplied fields into an owned client
func (h *ClientHandlers) UpdateClient(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}

	var patch models.ClientPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return respondError(c, err, "Client")
	}

	client, err := h.clientService.Update(c.Request().Context(), tenantID, c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Client")
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient permanently removes an owned client
func (h *ClientHandlers) DeleteClient(c echo.Context) error {
	tenantID, ok := tenantFrom(c)
	if !ok {
		return nil
	}
	if err := h.clientService.Delete(c.Request().Context(), tenantID, c.Param("id")); err != nil {
		return respondError(c, err, "Client")
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

package handlers

import (
	"errors"
	"net/http"

	"recruitcrm/internal/common"
	"recruitcrm/internal/services"

	"github.com/labstack/echo/v4"
)

const genericServerMessage = "Internal server error"

// respondError writes the envelope for a service error. Unexpected errors are
// logged with the request logger and never echoed to the caller.
func respondError(c echo.Context, err error, resource string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return common.SendValidationError(c, verr.Message, verr.Details)
	case errors.Is(err, services.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, services.ErrForbidden):
		return common.SendForbiddenError(c, resource)
	case errors.Is(err, services.ErrConflict):
		return common.SendConflictError(c, resource+" already exists")
	}

	common.LoggerFromContext(c.Request().Context()).
		WithError(err).
		WithField("resource", resource).
		Error("request failed")
	return common.SendServerError(c, genericServerMessage)
}

// bindAndValidate decodes the request body into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		msg := "Invalid request format"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if m, ok := he.Message.(string); ok && he.Code == http.StatusBadRequest {
				msg = m
			}
		}
		return &services.ValidationError{Message: msg}
	}
	if err := c.Validate(req); err != nil {
		if details, ok := common.ValidationDetails(err); ok {
			return &services.ValidationError{Message: "Validation failed", Details: details}
		}
		return err
	}
	return nil
}

// tenantFrom returns the verified tenant or writes the fixed 401
func tenantFrom(c echo.Context) (string, bool) {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		_ = common.SendUnauthorizedError(c)
	}
	return tenantID, ok
}

type successResponse struct {
	Success bool `json:"success"`
}

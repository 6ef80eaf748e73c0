package handlers

import (
	"net/http"

	"recruitcrm/internal/config"

	"github.com/labstack/echo/v4"
)

const (
	credentialSet     = "***SET***"
	credentialMissing = "MISSING"
)

// DebugHandlers reports which identity credentials are configured. Values are never returned.
type DebugHandlers struct {
	credentials config.FirebaseCredentials
}

func NewDebugHandlers(credentials config.FirebaseCredentials) *DebugHandlers {
	return &DebugHandlers{credentials: credentials}
}

type EnvironmentVariableStatus struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
	Value   string `json:"value"`
}

type DebugEnvResponse struct {
	Success           bool                        `json:"success"`
	MissingVariables  []string                    `json:"missingVariables"`
	EnvironmentStatus []EnvironmentVariableStatus `json:"environmentStatus"`
	TotalRequired     int                         `json:"totalRequired"`
	TotalPresent      int                         `json:"totalPresent"`
}

// DebugEnv handler
//
//	@Summary	Identity credential presence
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	DebugEnvResponse
//	@Router		/debug-env [get]
func (h *DebugHandlers) DebugEnv(c echo.Context) error {
	fields := h.credentials.Fields()
	resp := DebugEnvResponse{
		MissingVariables:  make([]string, 0),
		EnvironmentStatus: make([]EnvironmentVariableStatus, 0, len(fields)),
		TotalRequired:     len(fields),
	}

	for _, f := range fields {
		status := EnvironmentVariableStatus{Name: f.Name, Present: f.Value != "", Value: credentialMissing}
		if status.Present {
			status.Value = credentialSet
			resp.TotalPresent++
		} else {
			resp.MissingVariables = append(resp.MissingVariables, f.Name)
		}
		resp.EnvironmentStatus = append(resp.EnvironmentStatus, status)
	}
	resp.Success = len(resp.MissingVariables) == 0

	return c.JSON(http.StatusOK, resp)
}

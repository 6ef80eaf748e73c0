// Package server assembles the HTTP API.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"recruitcrm/internal/auth"
	"recruitcrm/internal/caching"
	"recruitcrm/internal/common"
	"recruitcrm/internal/config"
	_ "recruitcrm/internal/docs"
	"recruitcrm/internal/handlers"
	"recruitcrm/internal/middleware"
	"recruitcrm/internal/repositories"
	"recruitcrm/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Store *repositories.Store
	// Degraded is set when the in-memory store replaced an unreachable database
	Degraded bool
	Cache    caching.CacheService
	// Storage is nil when object storage is not configured
	Storage  services.ObjectStorage
	Verifier auth.Verifier
	Logger   *logrus.Logger
	HTTP     config.HTTPOptions
	Firebase config.FirebaseCredentials
	Version  string
}

// Services groups the domain services built over a store
type Services struct {
	Clients      services.ClientService
	Jobs         services.JobService
	Candidates   services.CandidateService
	Sheets       services.SheetService
	Applications services.ApplicationService
	Export       services.ExportService
}

func NewServices(store *repositories.Store, cache caching.CacheService, storage services.ObjectStorage) Services {
	sheets := services.NewSheetService(store.SheetCandidates, cache)
	return Services{
		Clients:      services.NewClientService(store.Clients, cache),
		Jobs:         services.NewJobService(store.Jobs, cache),
		Candidates:   services.NewCandidateService(store.Candidates, cache),
		Sheets:       sheets,
		Applications: services.NewApplicationService(store.Applications, store.Jobs, cache),
		Export:       services.NewExportService(sheets, storage),
	}
}

// New builds the echo instance with every route registered
func New(deps Dependencies) (*echo.Echo, error) {
	if deps.Cache == nil {
		deps.Cache = caching.NewNoopCacheService()
	}
	svc := NewServices(deps.Store, deps.Cache, deps.Storage)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = common.NewRequestValidator()
	e.HTTPErrorHandler = errorHandler

	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: deps.HTTP.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	if deps.HTTP.BodyLimit != "" {
		e.Use(echoMiddleware.BodyLimit(deps.HTTP.BodyLimit))
	}
	e.Use(middleware.Metrics())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	rateLimit, err := middleware.RateLimit(deps.HTTP.RateLimit, deps.HTTP.TrustForwarded)
	if err != nil {
		return nil, fmt.Errorf("configure rate limit: %w", err)
	}
	api.Use(rateLimit)

	healthHandlers := handlers.NewHealthHandlers(deps.Store, deps.Store.Driver, deps.Degraded, deps.Cache, deps.Storage, deps.Version)
	debugHandlers := handlers.NewDebugHandlers(deps.Firebase)
	api.GET("/health", healthHandlers.HealthCheck)
	api.GET("/health/ready", healthHandlers.ReadinessCheck)
	api.GET("/debug-env", debugHandlers.DebugEnv)

	protected := api.Group("", middleware.Authenticate(deps.Verifier))

	clientHandlers := handlers.NewClientHandlers(svc.Clients)
	protected.GET("/clients", clientHandlers.ListClients)
	protected.POST("/clients", clientHandlers.CreateClient)
	protected.PUT("/clients/:id", clientHandlers.UpdateClient)
	protected.DELETE("/clients/:id", clientHandlers.DeleteClient)

	jobHandlers := handlers.NewJobHandlers(svc.Jobs)
	protected.GET("/jobs", jobHandlers.ListJobs)
	protected.POST("/jobs", jobHandlers.CreateJob)
	protected.PUT("/jobs/:id", jobHandlers.UpdateJob)
	protected.DELETE("/jobs/:id", jobHandlers.DeleteJob)

	sheetHandlers := handlers.NewSheetHandlers(svc.Sheets, svc.Export)
	protected.GET("/candidates/sheet", sheetHandlers.ListSheetCandidates)
	protected.POST("/candidates/sheet", sheetHandlers.CreateSheetCandidate)
	protected.PUT("/candidates/sheet", sheetHandlers.UpdateSheetCandidate)
	protected.GET("/candidates/sheet/export", sheetHandlers.ExportSheet)

	candidateHandlers := handlers.NewCandidateHandlers(svc.Candidates)
	protected.GET("/candidates", candidateHandlers.ListCandidates)
	protected.POST("/candidates", candidateHandlers.CreateCandidate)
	protected.PUT("/candidates/:id", candidateHandlers.UpdateCandidate)
	protected.DELETE("/candidates/:id", candidateHandlers.DeleteCandidate)

	applicationHandlers := handlers.NewApplicationHandlers(svc.Applications)
	protected.GET("/applications", applicationHandlers.ListApplications)
	protected.POST("/applications", applicationHandlers.CreateApplication)
	protected.PUT("/applications", applicationHandlers.UpdateApplication)

	return e, nil
}

// errorHandler renders framework errors (unknown routes, bad methods, panics) in the error envelope
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
			message = m
		} else if status < http.StatusInternalServerError {
			message = http.StatusText(status)
		}
	}
	if status >= http.StatusInternalServerError {
		common.LoggerFromContext(c.Request().Context()).WithError(err).Error("unhandled error")
	}

	var body *common.ErrorResponse
	switch status {
	case http.StatusUnauthorized:
		body = common.CreateErrorResponse(common.CodeUnauthorized, common.UnauthorizedMessage, nil)
	case http.StatusForbidden:
		body = common.CreateErrorResponse(common.CodeForbidden, message, nil)
	case http.StatusNotFound:
		body = common.CreateErrorResponse(common.CodeNotFound, message, nil)
	case http.StatusTooManyRequests:
		body = common.CreateErrorResponse(common.CodeRateLimited, message, nil)
	default:
		code := common.CodeValidation
		if status >= http.StatusInternalServerError {
			code = common.CodeServer
		}
		body = common.CreateErrorResponse(code, message, nil)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		common.LoggerFromContext(c.Request().Context()).WithError(writeErr).Warn("failed to write error response")
	}
}

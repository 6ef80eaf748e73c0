package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/services"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// StorePinger is the view of the document store the health checks need
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	store       StorePinger
	storeDriver string
	degraded    bool
	cache       caching.CacheService
	storage     services.ObjectStorage
	version     string
	startedAt   time.Time
}

// NewHealthHandlers creates a new health handlers instance. storage may be nil.
// degraded marks a process running on the in-memory fallback store.
func NewHealthHandlers(store StorePinger, storeDriver string, degraded bool, cache caching.CacheService, storage services.ObjectStorage, version string) *HealthHandlers {
	return &HealthHandlers{
		store:       store,
		storeDriver: storeDriver,
		degraded:    degraded,
		cache:       cache,
		storage:     storage,
		version:     version,
		startedAt:   time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Store      string            `json:"store"`
	Services   map[string]string `json:"services"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
}

// HealthCheck reports every dependency. It answers 200 even when degraded.
//
//	@Summary	Service health
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthStatus
//	@Router		/health [get]
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Store:      h.storeDriver,
		Services:   make(map[string]string, 3),
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
	}
	if h.degraded {
		health.Status = "degraded"
	}

	if err := h.store.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	switch {
	case caching.IsNoop(h.cache):
		health.Services["redis"] = "disabled"
	case h.cache.Ping(ctx) != nil:
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	default:
		health.Services["redis"] = "healthy"
	}

	switch {
	case h.storage == nil:
		health.Services["storage"] = "disabled"
	case h.storage.Ping(ctx) != nil:
		health.Services["storage"] = "unhealthy"
		health.Status = "degraded"
	default:
		health.Services["storage"] = "healthy"
	}

	return c.JSON(http.StatusOK, health)
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Only the document store is critical.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Document store unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DependencyCheck probes one downstream dependency.
type DependencyCheck func(ctx context.Context) error

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	logger *slog.Logger
	checks map[string]DependencyCheck
}

// NewHealthHandler creates a new health handler with named dependency checks.
func NewHealthHandler(logger *slog.Logger, checks map[string]DependencyCheck) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		checks: checks,
	}
}

// HealthCheck performs a basic health check
// @Summary Health check
// @Description Check if the service is healthy and running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /v1/health [get]
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "account-service",
		Uptime:    time.Since(startTime).String(),
	})
}

// ReadinessCheck probes downstream dependencies
// @Summary Readiness check
// @Description Check if the service is ready to serve traffic
// @Tags health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /v1/ready [get]
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]HealthStatus, len(h.checks))
	allHealthy := true

	for name, check := range h.checks {
		start := time.Now()
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", "dependency", name, "error", err)
			checks[name] = HealthStatus{
				Status:  "unhealthy",
				Message: err.Error(),
				Latency: time.Since(start).String(),
			}
			allHealthy = false
			continue
		}
		checks[name] = HealthStatus{
			Status:  "healthy",
			Message: "connected",
			Latency: time.Since(start).String(),
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, ReadinessResponse{
		Status:    status,
		Timestamp: time.Now(),
		Service:   "account-service",
		Checks:    checks,
	})
}

// LivenessCheck performs a liveness check
// @Summary Liveness check
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /v1/live [get]
func (h *HealthHandler) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Service:   "account-service",
		Uptime:    time.Since(startTime).String(),
	})
}

// Response types
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Uptime    string    `json:"uptime"`
}

type ReadinessResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Service   string                  `json:"service"`
	Checks    map[string]HealthStatus `json:"checks"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Latency string `json:"latency,omitempty"`
}

// startTime is set when the service starts
var startTime = time.Now()

package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/exoplanet-gateway/internal/middleware"
	"github.com/deppfellow/exoplanet-gateway/internal/server"
)

// UpstreamCheck is the health check name for the archive.
const UpstreamCheck = "upstream"

// Pinger checks that a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the service is alive and whether the
// archive is reachable.
type HealthHandler struct {
	Handler
	upstream Pinger
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server, upstream Pinger) *HealthHandler {
	return &HealthHandler{
		Handler:  NewHandler(s),
		upstream: upstream,
	}
}

// CheckHealth returns the overall status, a UTC timestamp, the
// environment and the result of each enabled check.
//
// It returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	obs := h.server.Config.Observability

	if obs != nil && obs.HasCheck(UpstreamCheck) && h.upstream != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		defer cancel()

		upstreamStart := time.Now()

		if err := h.upstream.Ping(ctx); err != nil {
			checks[UpstreamCheck] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(upstreamStart).String(),
				"error":         err.Error(),
			}
			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(upstreamStart)).
				Msg("upstream health check failed")

			h.recordHealthEvent(map[string]any{
				"check_type":       UpstreamCheck,
				"operation":        "health_check",
				"error_type":       "upstream_unhealthy",
				"response_time_ms": time.Since(upstreamStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks[UpstreamCheck] = map[string]any{
				"status":        "healthy",
				"response_time": time.Since(upstreamStart).String(),
			}

			logger.Info().
				Dur("response_time", time.Since(upstreamStart)).
				Msg("upstream health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthEvent(map[string]any{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthEvent sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordHealthEvent(params map[string]any) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", params)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/exoplanet-gateway/internal/handler"
)

// registerSystemRoutes registers endpoints that sit outside the API group:
// health, the docs page and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}

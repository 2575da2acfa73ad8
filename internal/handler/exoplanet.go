package handler

import (
	"encoding/json"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/exoplanet-gateway/internal/server"
	"github.com/deppfellow/exoplanet-gateway/internal/service"
	"github.com/deppfellow/exoplanet-gateway/internal/validation"
)

// ListExoplanetsRequest has no parameters.
type ListExoplanetsRequest struct{}

func (r *ListExoplanetsRequest) Validate() error {
	return nil
}

// GetPlanetarySystemRequest names the host star whose system is requested.
// The name is free text; it is quoted, not restricted.
type GetPlanetarySystemRequest struct {
	StarName string `param:"star_name" validate:"required"`
}

func (r *GetPlanetarySystemRequest) Validate() error {
	return validation.Struct(r)
}

// ExoplanetHandler serves the archive-backed endpoints.
type ExoplanetHandler struct {
	Handler
	exoplanets *service.ExoplanetService
}

// NewExoplanetHandler constructs an ExoplanetHandler.
func NewExoplanetHandler(s *server.Server, exoplanets *service.ExoplanetService) *ExoplanetHandler {
	return &ExoplanetHandler{
		Handler:    NewHandler(s),
		exoplanets: exoplanets,
	}
}

// ListExoplanets relays the archive listing of every known planet.
func (h *ExoplanetHandler) ListExoplanets(c echo.Context, _ *ListExoplanetsRequest) (json.RawMessage, error) {
	return h.exoplanets.ListExoplanets(c.Request().Context())
}

// GetPlanetarySystem relays every planet orbiting the requested host star.
func (h *ExoplanetHandler) GetPlanetarySystem(c echo.Context, req *GetPlanetarySystemRequest) (json.RawMessage, error) {
	return h.exoplanets.GetPlanetarySystem(c.Request().Context(), starName(c, req.StarName))
}

// starName returns the host star as the caller sent it. Echo hands over an
// already decoded param unless the request needed a raw path (an encoded
// slash, for instance); only then is it decoded here, and only once.
func starName(c echo.Context, param string) string {
	if c.Request().URL.RawPath == "" {
		return param
	}
	if decoded, err := url.PathUnescape(param); err == nil {
		return decoded
	}
	return param
}

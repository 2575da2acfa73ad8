// Package handler is the first layer after the router.
//
// It binds and validates requests using the validation
// package, calls the service layer, and writes the
// response.
package handler

import (
	"github.com/deppfellow/exoplanet-gateway/internal/server"
	"github.com/deppfellow/exoplanet-gateway/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Exoplanet *ExoplanetHandler
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Exoplanet: NewExoplanetHandler(s, services.Exoplanet),
		Health:    NewHealthHandler(s, services.Exoplanet),
		OpenAPI:   NewOpenAPIHandler(s),
	}
}

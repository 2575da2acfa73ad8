package service

import (
	"github.com/deppfellow/exoplanet-gateway/internal/server"
)

// Services is a container for all service instances.
type Services struct {
	Exoplanet *ExoplanetService
}

// NewServices wires every service against the shared server container.
func NewServices(s *server.Server) *Services {
	return &Services{
		Exoplanet: NewExoplanetService(s.Upstream),
	}
}

package service

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/deppfellow/exoplanet-gateway/internal/errs"
	"github.com/deppfellow/exoplanet-gateway/internal/lib/tap"
)

// Messages returned to the caller when the archive answers with a non-200 status.
const (
	ExoplanetsUpstreamMessage      = "Failed to fetch data from NASA API"
	PlanetarySystemUpstreamMessage = "Failed to fetch planetary system data from NASA API"
)

// Querier runs an ADQL query and returns the raw JSON payload.
// *tap.Client is the production implementation.
type Querier interface {
	Query(ctx context.Context, adql string) (json.RawMessage, error)
}

// ExoplanetService answers the exoplanet endpoints from the archive.
type ExoplanetService struct {
	upstream Querier
}

// NewExoplanetService creates an ExoplanetService backed by upstream.
func NewExoplanetService(upstream Querier) *ExoplanetService {
	return &ExoplanetService{upstream: upstream}
}

// ListExoplanets returns the default parameter set of every known planet.
func (s *ExoplanetService) ListExoplanets(ctx context.Context) (json.RawMessage, error) {
	return s.fetch(ctx, tap.ExoplanetsQuery(), ExoplanetsUpstreamMessage)
}

// GetPlanetarySystem returns every planet orbiting the named host star.
func (s *ExoplanetService) GetPlanetarySystem(ctx context.Context, starName string) (json.RawMessage, error) {
	return s.fetch(ctx, tap.PlanetarySystemQuery(starName), PlanetarySystemUpstreamMessage)
}

// Ping runs the cheapest archive query to check the upstream is answering.
func (s *ExoplanetService) Ping(ctx context.Context) error {
	_, err := s.upstream.Query(ctx, tap.PingQuery())
	if err != nil {
		return errors.Wrap(err, "upstream ping failed")
	}
	return nil
}

// fetch runs adql and maps the outcome:
//   - success: the payload, untouched
//   - non-200 upstream status S: HTTPError{S, upstreamMessage}
//   - anything else: HTTPError{500, err.Error()}
func (s *ExoplanetService) fetch(ctx context.Context, adql, upstreamMessage string) (json.RawMessage, error) {
	payload, err := s.upstream.Query(ctx, adql)
	if err == nil {
		return payload, nil
	}

	var statusErr *tap.StatusError
	if errors.As(err, &statusErr) {
		return nil, errs.NewUpstreamError(statusErr.StatusCode, upstreamMessage)
	}

	return nil, errs.NewInternalServerError(err.Error())
}

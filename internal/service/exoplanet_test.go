package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/exoplanet-gateway/internal/errs"
	"github.com/deppfellow/exoplanet-gateway/internal/lib/tap"
)

type fakeQuerier struct {
	payload json.RawMessage
	err     error
	queries []string
}

func (f *fakeQuerier) Query(_ context.Context, adql string) (json.RawMessage, error) {
	f.queries = append(f.queries, adql)
	return f.payload, f.err
}

func TestListExoplanetsPassesPayloadThrough(t *testing.T) {
	upstream := &fakeQuerier{payload: json.RawMessage(`[{"pl_name":"Kepler-11b"}]`)}
	svc := NewExoplanetService(upstream)

	payload, err := svc.ListExoplanets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `[{"pl_name":"Kepler-11b"}]`, string(payload))
	require.Len(t, upstream.queries, 1)
	assert.Equal(t, tap.ExoplanetsQuery(), upstream.queries[0])
}

func TestGetPlanetarySystemBuildsHostnameFilter(t *testing.T) {
	upstream := &fakeQuerier{payload: json.RawMessage(`[]`)}
	svc := NewExoplanetService(upstream)

	_, err := svc.GetPlanetarySystem(context.Background(), "Kepler-11")
	require.NoError(t, err)

	require.Len(t, upstream.queries, 1)
	assert.Contains(t, upstream.queries[0], "hostname = 'Kepler-11'")
}

func TestFetchMapsUpstreamStatus(t *testing.T) {
	tests := []struct {
		name    string
		call    func(*ExoplanetService) error
		message string
	}{
		{
			name: "list",
			call: func(s *ExoplanetService) error {
				_, err := s.ListExoplanets(context.Background())
				return err
			},
			message: ExoplanetsUpstreamMessage,
		},
		{
			name: "planetary system",
			call: func(s *ExoplanetService) error {
				_, err := s.GetPlanetarySystem(context.Background(), "Kepler-11")
				return err
			},
			message: PlanetarySystemUpstreamMessage,
		},
	}

	for _, tt := range tests {
		for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusBadGateway} {
			t.Run(tt.name, func(t *testing.T) {
				svc := NewExoplanetService(&fakeQuerier{err: &tap.StatusError{StatusCode: status}})

				err := tt.call(svc)

				var httpErr *errs.HTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, status, httpErr.Status)
				assert.Equal(t, tt.message, httpErr.Message)
			})
		}
	}
}

func TestFetchMapsOtherFailuresTo500(t *testing.T) {
	calls := map[string]func(*ExoplanetService) (json.RawMessage, error){
		"list exoplanets": func(s *ExoplanetService) (json.RawMessage, error) {
			return s.ListExoplanets(context.Background())
		},
		"planetary system": func(s *ExoplanetService) (json.RawMessage, error) {
			return s.GetPlanetarySystem(context.Background(), "Kepler-11")
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			svc := NewExoplanetService(&fakeQuerier{err: errors.New("dial tcp: connection refused")})

			_, err := call(svc)

			var httpErr *errs.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
			assert.Equal(t, "dial tcp: connection refused", httpErr.Message)
		})
	}
}

func TestPing(t *testing.T) {
	ok := &fakeQuerier{payload: json.RawMessage(`[{"pl_name":"x"}]`)}
	require.NoError(t, NewExoplanetService(ok).Ping(context.Background()))
	assert.Equal(t, []string{tap.PingQuery()}, ok.queries)

	failing := &fakeQuerier{err: errors.New("boom")}
	err := NewExoplanetService(failing).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream ping failed")
}

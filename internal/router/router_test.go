package router

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/exoplanet-gateway/internal/config"
	"github.com/deppfellow/exoplanet-gateway/internal/handler"
	"github.com/deppfellow/exoplanet-gateway/internal/lib/tap"
	"github.com/deppfellow/exoplanet-gateway/internal/server"
	"github.com/deppfellow/exoplanet-gateway/internal/service"
)

// newTestRouter wires the full stack against upstreamURL.
func newTestRouter(t *testing.T, upstreamURL string) *echo.Echo {
	t.Helper()

	cfg := config.Default()
	cfg.Observability = config.DefaultObservabilityConfig()
	cfg.Upstream.BaseURL = upstreamURL

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	services := service.NewServices(s)
	return NewRouter(s, handler.NewHandlers(s, services))
}

func serve(r *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// closedURL returns a URL nothing is listening on.
func closedURL(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr + "/TAP/sync"
}

func TestExoplanetsPassThrough(t *testing.T) {
	const payload = `[{"pl_name":"Kepler-11b","hostname":"Kepler-11","ra":297.1,"dec":41.9,"sy_dist":613.0,"pl_rade":1.8,"disc_year":2010}]`

	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer upstream.Close()

	rec := serve(newTestRouter(t, upstream.URL), http.MethodGet, "/api/exoplanets", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.String())
	assert.Equal(t, "SELECT pl_name, hostname, ra, dec, sy_dist, pl_rade, disc_year FROM ps WHERE default_flag = 1", gotQuery)
}

func TestPlanetarySystemQueriesHostname(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	r := newTestRouter(t, upstream.URL)

	rec := serve(r, http.MethodGet, "/api/planetary-system/Kepler-11", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[]`, rec.Body.String())
	assert.Contains(t, gotQuery, "FROM ps WHERE hostname = 'Kepler-11'")

	rec = serve(r, http.MethodGet, "/api/planetary-system/HD%2010180", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, gotQuery, "hostname = 'HD 10180'")

	rec = serve(r, http.MethodGet, "/api/planetary-system/X%2520Y", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasSuffix(gotQuery, "WHERE hostname = 'X%20Y'"), gotQuery)
}

func TestUpstreamStatusIsRelayed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	r := newTestRouter(t, upstream.URL)

	tests := []struct {
		path string
		body string
	}{
		{path: "/api/exoplanets", body: `{"error":"Failed to fetch data from NASA API"}`},
		{path: "/api/planetary-system/Kepler-11", body: `{"error":"Failed to fetch planetary system data from NASA API"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(r, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestUpstreamFailuresAre500(t *testing.T) {
	invalidJSON := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer invalidJSON.Close()

	upstreams := map[string]string{
		"unreachable":  closedURL(t),
		"invalid json": invalidJSON.URL,
	}

	routes := []struct {
		path  string
		query string
	}{
		{path: "/api/exoplanets", query: tap.ExoplanetsQuery()},
		{path: "/api/planetary-system/Kepler-11", query: tap.PlanetarySystemQuery("Kepler-11")},
	}

	for name, upstreamURL := range upstreams {
		for _, route := range routes {
			t.Run(name+" "+route.path, func(t *testing.T) {
				cfg := config.Default()
				cfg.Upstream.BaseURL = upstreamURL
				_, wantErr := tap.NewClient(cfg.Upstream).Query(context.Background(), route.query)
				require.Error(t, wantErr)

				rec := serve(newTestRouter(t, upstreamURL), http.MethodGet, route.path, nil)

				assert.Equal(t, http.StatusInternalServerError, rec.Code)

				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Len(t, body, 1)
				assert.Equal(t, wantErr.Error(), body["error"])
			})
		}
	}
}

func TestPayloadRelayedByteForByte(t *testing.T) {
	const payload = "[1]\n"

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer upstream.Close()

	rec := serve(newTestRouter(t, upstream.URL), http.MethodGet, "/api/planetary-system/Kepler-11", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.String())
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	header := http.Header{}
	header.Set(echo.HeaderOrigin, "http://localhost:3000")

	rec := serve(newTestRouter(t, upstream.URL), http.MethodGet, "/api/exoplanets", header)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := serve(newTestRouter(t, closedURL(t)), http.MethodGet, "/api/unknown", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
}

func TestStatusReportsUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SELECT TOP 1 pl_name FROM ps", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`[{"pl_name":"11 Com b"}]`))
	}))
	defer upstream.Close()

	rec := serve(newTestRouter(t, upstream.URL), http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(newTestRouter(t, closedURL(t)), http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestResponsesCarryRequestID(t *testing.T) {
	rec := serve(newTestRouter(t, closedURL(t)), http.MethodGet, "/api/unknown", nil)

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

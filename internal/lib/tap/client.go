// Package tap is a client for the synchronous TAP endpoint of the
// NASA Exoplanet Archive.
//
// Queries are ADQL text sent as `query=<adql>&format=json` on a GET; the
// JSON body is returned undecoded once it is known to be valid JSON.
package tap

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"

	"github.com/deppfellow/exoplanet-gateway/internal/config"
)

// StatusError is returned when the archive answers with a status other than 200.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tap: upstream returned status %d", e.StatusCode)
}

// Client issues ADQL queries against a TAP endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient builds a Client from the upstream config.
//
// The transport is a clone of the default transport wrapped in New Relic's
// round tripper, so outbound calls show up as external segments of the
// inbound transaction when the agent is enabled.
func NewClient(cfg config.UpstreamConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
		// Only set when the operator asked for it via upstream.insecure_skip_verify.
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	return &Client{
		httpClient: &http.Client{
			Transport: newrelic.NewRoundTripper(transport),
			Timeout:   cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
	}
}

// Query runs adql and returns the JSON payload exactly as the archive sent it.
//
// A non-200 answer yields *StatusError. Request construction, transport and
// JSON decode failures are returned wrapped with context.
func (c *Client) Query(ctx context.Context, adql string) (json.RawMessage, error) {
	endpoint, err := c.queryURL(adql)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upstream response")
	}

	if !json.Valid(body) {
		return nil, errors.New("failed to decode upstream response: invalid JSON")
	}

	return json.RawMessage(body), nil
}

func (c *Client) queryURL(adql string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid upstream url %q", c.baseURL)
	}

	params := u.Query()
	params.Set("query", adql)
	params.Set("format", "json")
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad config.
//   - Provide defaults for every block, so an empty environment runs the gateway.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key idea in this file:
	- Env vars are read using a prefix: EXOPLANET_
	- Keys are normalized (lowercased, prefix removed)
	- A double underscore marks nesting, single underscores stay inside a key
	  e.g. EXOPLANET_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
*/

// EnvPrefix is the prefix every gateway environment variable carries.
const EnvPrefix = "EXOPLANET_"

// DefaultUpstreamURL is the synchronous TAP endpoint of the NASA Exoplanet Archive.
const DefaultUpstreamURL = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Upstream      UpstreamConfig       `koanf:"upstream" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and to switch debug behavior.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored in seconds and converted when the http.Server is built.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// UpstreamConfig describes the TAP service the gateway forwards queries to.
type UpstreamConfig struct {
	// BaseURL is the synchronous TAP endpoint; query and format are appended.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Timeout bounds a single outbound call. Zero leaves it to the transport.
	Timeout time.Duration `koanf:"timeout"`

	// InsecureSkipVerify disables certificate verification on the outbound
	// connection. Off unless explicitly requested.
	InsecureSkipVerify bool `koanf:"insecure_skip_verify"`

	// UserAgent is sent on every outbound request.
	UserAgent string `koanf:"user_agent" validate:"required"`
}

// Default returns the configuration used when no environment is supplied.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Upstream: UpstreamConfig{
			BaseURL:   DefaultUpstreamURL,
			UserAgent: "exoplanet-gateway/1.0",
		},
	}
}

// envKey turns EXOPLANET_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// listKeys are decoded from comma separated env values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// envValue maps an env var to its koanf key, splitting list values.
func envValue(key, value string) (string, any) {
	k := envKey(key)
	if !listKeys[k] {
		return k, value
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return k, out
}

// LoadConfig loads configuration from environment variables, unmarshals it over
// the defaults, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix EXOPLANET_
//   - Converts env keys into koanf keys using "." nesting
//   - Splits comma separated list values (CORS origins, health checks)
//   - Unmarshals into Config, keeping defaults for keys that are absent
//   - Validates required config blocks/fields
//   - Fills observability defaults and forces service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()
	if k.Exists("observability") {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service naming stays consistent no matter what the env says.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

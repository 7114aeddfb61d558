package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultClientName is the client namespace used when none is configured
const DefaultClientName = "LodeStar_Demo"

// liveBaseURL is the template for namespaced upstream endpoints
const liveBaseURL = "https://www.lodestarss.com/Live/%s/"

// Config represents the full server configuration
type Config struct {
	BaseURL    string        `env:"LODESTAR_BASE_URL"`
	ClientName string        `env:"LODESTAR_CLIENT_NAME" envDefault:"LodeStar_Demo"`
	Username   string        `env:"LODESTAR_USERNAME"`
	Password   string        `env:"LODESTAR_PASSWORD"`
	Timeout    time.Duration `env:"LODESTAR_TIMEOUT" envDefault:"30s"`
	HTTPAddr   string        `env:"LODESTAR_HTTP_ADDR" envDefault:":8080"`
}

// Load parses the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// ResolvedBaseURL returns the explicit base URL, or the namespaced live URL
// built from the client name
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	name := c.ClientName
	if name == "" {
		name = DefaultClientName
	}
	return fmt.Sprintf(liveBaseURL, name)
}

// Validate checks the configuration for basic validity
func (c *Config) Validate() error {
	if c.BaseURL == "" && strings.TrimSpace(c.ClientName) == "" {
		return fmt.Errorf("client name is required when no base URL is set")
	}

	u, err := url.Parse(c.ResolvedBaseURL())
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	return nil
}

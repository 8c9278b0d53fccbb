package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return Parse()
}

// parses the process environment into a validated config
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Kong.AdminURL = strings.TrimRight(cfg.Kong.AdminURL, "/")

	if cfg.Google.RedirectURL == "" {
		cfg.Google.RedirectURL = cfg.BaseURL + "/callback"
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{cfg.BaseURL}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// checks values that parse fine but cannot be used
func (c *Config) Validate() error {
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}

	if c.ProvisionTimeout <= 0 {
		return fmt.Errorf("PROVISION_TIMEOUT must be positive, got %s", c.ProvisionTimeout)
	}

	if c.OAuthStateTTL <= 0 {
		return fmt.Errorf("OAUTH_STATE_TTL must be positive, got %s", c.OAuthStateTTL)
	}

	if c.Kong.MaxAttempts < 1 {
		return fmt.Errorf("KONG_MAX_ATTEMPTS must be at least 1, got %d", c.Kong.MaxAttempts)
	}

	for name, raw := range map[string]string{
		"BASE_URL":            c.BaseURL,
		"KONG_ADMIN_URL":      c.Kong.AdminURL,
		"GOOGLE_REDIRECT_URL": c.Google.RedirectURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	return nil
}

// reports whether cookies should be marked secure
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

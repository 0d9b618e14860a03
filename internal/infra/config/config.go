// Package config provides process-wide configuration for the eLabFTW bridge.
// Values come from an optional YAML file overlaid by environment variables;
// the environment always wins. The base URL and API key are mandatory:
// without them the process must refuse to start.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrMissingBaseURL = errors.New("eLabFTW API URL is not configured (set ELABFTW_API_URL)")
	ErrMissingAPIKey  = errors.New("eLabFTW API key is not configured (set ELABFTW_API_KEY)")
)

const (
	envKeyBaseURL   = "ELABFTW_API_URL"
	envKeyAPIKey    = "ELABFTW_API_KEY"
	envKeyVerifyTLS = "ELABFTW_VERIFY_SSL"
)

// Config holds the connection settings for one eLabFTW instance.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// BaseURL is the API root, e.g. https://lab.example.com/api/v2.
	// Stored without a trailing slash.
	BaseURL string
	// APIKey is sent verbatim in the Authorization header of every request.
	APIKey string
	// VerifyTLS controls certificate verification. Defaults to false because
	// self-signed certificates are the norm in lab deployments.
	VerifyTLS bool
}

type fileConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	VerifyTLS bool   `yaml:"verify_tls"`
}

// Load reads configuration from the optional YAML file at path (empty path
// skips the file), then overlays environment variables. It returns an error
// when the base URL or API key end up empty.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.BaseURL = fc.BaseURL
		cfg.APIKey = fc.APIKey
		cfg.VerifyTLS = fc.VerifyTLS
	}

	if v := os.Getenv(envKeyBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envKeyAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(envKeyVerifyTLS); v != "" {
		cfg.VerifyTLS = strings.EqualFold(v, "true")
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.BaseURL == "" {
		return Config{}, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	return cfg, nil
}

// =============================================================================
// PO Tracker - Configuration
// =============================================================================
//
// Main configuration is a single YAML file with defaults applied for every
// unset field, so an empty or missing file still yields a runnable setup.
// The collaborator API token never lives in the YAML; it is read from the
// environment, with an optional .env overlay for local development.
//
// =============================================================================

package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/workbook"
)

// TokenEnvVar names the environment variable carrying the API bearer token.
const TokenEnvVar = "PO_TRACKER_API_TOKEN"

// MainConfig is the application configuration.
type MainConfig struct {
	// APIBaseURL is the collaborator API base path.
	// Default: "http://localhost:3000/api"
	APIBaseURL string `yaml:"api_base_url"`

	// APITimeoutSeconds bounds each collaborator request.
	// Default: 30
	APITimeoutSeconds int `yaml:"api_timeout_seconds"`

	// ListenAddr is the HTTP server bind address for `po-tracker serve`.
	// Default: ":8091"
	ListenAddr string `yaml:"listen_addr"`

	// ParseTimeoutMillis bounds workbook decoding. Default: 10000.
	ParseTimeoutMillis int `yaml:"parse_timeout_millis"`

	// MaxRows caps projected records per import. Default: 10000.
	MaxRows int `yaml:"max_rows"`

	// MaxSheets caps workbook sheet count. Default: 10.
	MaxSheets int `yaml:"max_sheets"`

	// APIToken is resolved from the environment, never from YAML.
	APIToken string `yaml:"-"`
}

// Load reads the configuration file, applies defaults, and resolves the API
// token from the environment. A missing file is not an error: defaults apply.
func Load(configPath string) (*MainConfig, error) {
	// Best-effort .env overlay; absence is the normal case in production.
	_ = godotenv.Load()

	var config MainConfig
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&config)
	config.APIToken = os.Getenv(TokenEnvVar)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *MainConfig) {
	if config.APIBaseURL == "" {
		config.APIBaseURL = "http://localhost:3000/api"
	}
	if config.APITimeoutSeconds == 0 {
		config.APITimeoutSeconds = 30
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8091"
	}
	if config.ParseTimeoutMillis == 0 {
		config.ParseTimeoutMillis = 10000
	}
	if config.MaxRows == 0 {
		config.MaxRows = workbook.DefaultMaxRows
	}
	if config.MaxSheets == 0 {
		config.MaxSheets = workbook.DefaultMaxSheets
	}
}

// validate rejects configurations that cannot work at runtime.
func validate(config *MainConfig) error {
	if _, err := url.Parse(config.APIBaseURL); err != nil {
		return fmt.Errorf("api_base_url is not a valid URL: %w", err)
	}
	if config.ParseTimeoutMillis < 0 || config.MaxRows < 0 || config.MaxSheets < 0 {
		return fmt.Errorf("parse limits must not be negative")
	}
	return nil
}

// ParseConfig converts the configured limits into the parser's bounds.
func (c *MainConfig) ParseConfig() workbook.ParseConfig {
	return workbook.ParseConfig{
		Timeout:   time.Duration(c.ParseTimeoutMillis) * time.Millisecond,
		MaxRows:   c.MaxRows,
		MaxSheets: c.MaxSheets,
	}
}

// APITimeout returns the collaborator request timeout as a duration.
func (c *MainConfig) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

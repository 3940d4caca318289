package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the driver configuration.
type Config struct {
	// ServerURL is the signaling endpoint (ws:// or wss://).
	// Empty means discover a backend over mDNS.
	ServerURL string `yaml:"server_url"`

	// TenantAPIURL is the base URL of the tenant provisioning API.
	// Empty disables token provisioning.
	TenantAPIURL string `yaml:"tenant_api_url"`

	// TokenAuthEnabled routes authentication requests to the external
	// token flow instead of the in-driver credential dialog.
	TokenAuthEnabled bool `yaml:"token_auth_enabled"`

	// Recorder marks this client as a recorder participant.
	Recorder bool `yaml:"recorder"`

	// Gateway marks this client as a SIP gateway participant.
	Gateway bool `yaml:"gateway"`

	// StateDir is the directory for persisted state such as
	// credential overrides.
	StateDir string `yaml:"state_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// Parse parses a configuration from YAML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.ServerURL != "" {
		u, err := url.Parse(c.ServerURL)
		if err != nil {
			return fmt.Errorf("invalid server_url: %w", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("invalid server_url scheme %q: must be ws or wss", u.Scheme)
		}
	}
	if c.Recorder && c.Gateway {
		return fmt.Errorf("recorder and gateway are mutually exclusive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// OverridesPath returns the path of the credential overrides file, or
// empty when no state directory is configured.
func (c *Config) OverridesPath() string {
	if c.StateDir == "" {
		return ""
	}
	return filepath.Join(c.StateDir, "overrides.json")
}

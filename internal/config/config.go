package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. HOTELMGR_API_URL
const EnvPrefix = "HOTELMGR_"

type Config struct {
	// Backend settings
	API APIConfig `yaml:"api" envPrefix:"API_"`

	// Log settings
	Log LogConfig `yaml:"log" envPrefix:"LOG_"`

	// Terminal UI settings
	UI UIConfig `yaml:"ui"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"URL"`     // REST root, e.g. http://localhost:8080/api
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"` // Per-request timeout
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"FORMAT"` // text or json
	File   string `yaml:"file" env:"FILE"`     // Log file; the TUI owns stdout
}

type UIConfig struct {
	Locale string `yaml:"locale" env:"LOCALE"` // pt-BR or en-US
}

// configDir returns ~/.config/hotelmgr
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "hotelmgr")
	}
	return filepath.Join(homeDir, ".config", "hotelmgr")
}

// DefaultConfigPath returns ~/.config/hotelmgr/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(configDir(), "hotelmgr.log"),
		},
		UI: UIConfig{
			Locale: "pt-BR",
		},
	}
}

// Load loads config from the given path, or defaults if the file doesn't exist.
// Environment overrides are applied on top in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from HOTELMGR_* environment variables
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate rejects settings the app cannot start with
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the log file directory
func (c *Config) EnsureDirectories() error {
	if c.Log.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.Log.File), 0755)
}

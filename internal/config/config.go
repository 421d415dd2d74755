// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type APIConfig struct {
	// WriteRatePerMinute caps mutating requests per client IP. Zero uses the
	// limiter default.
	WriteRatePerMinute int `yaml:"write_rate_per_minute"`
	// TrustProxy enables X-Forwarded-For handling behind a fronting proxy.
	TrustProxy bool `yaml:"trust_proxy"`
}

type ThemeConfig struct {
	// CacheRewarmSeconds is the interval of the background job that keeps
	// the active-theme CSS cache warm. Zero disables the job.
	CacheRewarmSeconds int `yaml:"cache_rewarm_seconds"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	API APIConfig `yaml:"api"`

	Theme ThemeConfig `yaml:"theme"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.API.WriteRatePerMinute < 0 {
		return fmt.Errorf("api write rate must not be negative")
	}
	if c.Theme.CacheRewarmSeconds < 0 {
		return fmt.Errorf("theme cache rewarm interval must not be negative")
	}

	return nil
}

// CacheRewarmInterval returns the configured rewarm interval, or zero when
// the job is disabled.
func (c *Config) CacheRewarmInterval() time.Duration {
	return time.Duration(c.Theme.CacheRewarmSeconds) * time.Second
}

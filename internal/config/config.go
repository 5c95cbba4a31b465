package config

import (
	"errors"
	"fmt"
	"os"

	"mobilewash/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig               `yaml:"app"`
	Server     ServerConfig            `yaml:"server"`
	Admin      AdminConfig             `yaml:"admin"`
	Redis      RedisConfig             `yaml:"redis"`
	Monitoring MonitoringConfig        `yaml:"monitoring"`
	Logging    LoggingConfig           `yaml:"logging"`
	Booking    BookingConfig           `yaml:"booking"`
	Exports    ExportConfig            `yaml:"exports"`
	Packages   []models.ServicePackage `yaml:"packages"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// AdminConfig guards the admin endpoints with API keys and per-key rate
// limits.
type AdminConfig struct {
	AuthEnabled  bool            `yaml:"auth_enabled"`
	HeaderAPIKey string          `yaml:"header_api_key"`
	APIKeys      []AdminAPIKey   `yaml:"api_keys"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

type AdminAPIKey struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

// BookingConfig tunes the public booking flow.
type BookingConfig struct {
	SessionTTL        int `yaml:"session_ttl"`         // seconds
	RateLimitRequests int `yaml:"rate_limit_requests"` // per window
	RateLimitWindow   int `yaml:"rate_limit_window"`   // seconds
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand environment variables inside the YAML before parsing.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Admin.AuthEnabled && len(c.Admin.APIKeys) == 0 {
		return errors.New("admin auth is enabled but no api keys are configured")
	}

	return ValidatePackages(c.Packages)
}

// ValidatePackages rejects catalogs with missing or duplicate IDs or
// non-positive prices.
func ValidatePackages(packages []models.ServicePackage) error {
	seen := make(map[string]bool)
	for _, pkg := range packages {
		if pkg.ID == "" {
			return fmt.Errorf("package %q has empty ID", pkg.Name)
		}
		if seen[pkg.ID] {
			return fmt.Errorf("duplicate package ID found: %s", pkg.ID)
		}
		if pkg.Price <= 0 {
			return fmt.Errorf("package %q has invalid price %d", pkg.ID, pkg.Price)
		}
		if pkg.Duration <= 0 {
			return fmt.Errorf("package %q has invalid duration %d", pkg.ID, pkg.Duration)
		}
		seen[pkg.ID] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "mobilewash"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Admin.HeaderAPIKey == "" {
		c.Admin.HeaderAPIKey = "x-api-key"
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Booking.SessionTTL == 0 {
		c.Booking.SessionTTL = models.DefaultSessionTTL
	}
	if c.Booking.RateLimitRequests == 0 {
		c.Booking.RateLimitRequests = models.RateLimitRequests
	}
	if c.Booking.RateLimitWindow == 0 {
		c.Booking.RateLimitWindow = models.RateLimitWindow
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if len(c.Packages) == 0 {
		c.Packages = models.DefaultPackages()
	}
}

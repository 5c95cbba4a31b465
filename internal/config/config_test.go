package config

import (
	"os"
	"path/filepath"
	"testing"

	"mobilewash/internal/models"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "mobilewash"
  environment: "test"
server:
  port: 9999
admin:
  auth_enabled: true
  api_keys:
    - key: "secret"
      name: "dashboard"
packages:
  - id: "basic"
    name: "Basic Wash"
    price: 25
    duration: 30
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}

	if len(cfg.Packages) != 1 || cfg.Packages[0].ID != "basic" {
		t.Errorf("expected 1 package with ID basic")
	}

	if len(cfg.Admin.APIKeys) != 1 || cfg.Admin.APIKeys[0].Key != "secret" {
		t.Errorf("expected 1 admin api key")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("app:\n  name: test\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Admin.HeaderAPIKey != "x-api-key" {
		t.Errorf("expected default api key header, got %s", cfg.Admin.HeaderAPIKey)
	}
	if len(cfg.Packages) != 3 {
		t.Errorf("expected default catalog of 3 packages, got %d", len(cfg.Packages))
	}
	if cfg.Booking.SessionTTL != models.DefaultSessionTTL {
		t.Errorf("expected default session ttl, got %d", cfg.Booking.SessionTTL)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Server:   ServerConfig{Port: 8080},
				Packages: []models.ServicePackage{{ID: "basic", Name: "Basic", Price: 25, Duration: 30}},
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			cfg: Config{
				Server: ServerConfig{Port: -1},
			},
			wantErr: true,
		},
		{
			name: "auth enabled without keys",
			cfg: Config{
				Server: ServerConfig{Port: 8080},
				Admin:  AdminConfig{AuthEnabled: true},
			},
			wantErr: true,
		},
		{
			name: "duplicate package id",
			cfg: Config{
				Server: ServerConfig{Port: 8080},
				Packages: []models.ServicePackage{
					{ID: "basic", Name: "Basic", Price: 25, Duration: 30},
					{ID: "basic", Name: "Other", Price: 45, Duration: 60},
				},
			},
			wantErr: true,
		},
		{
			name: "empty package id",
			cfg: Config{
				Server:   ServerConfig{Port: 8080},
				Packages: []models.ServicePackage{{Name: "Basic", Price: 25, Duration: 30}},
			},
			wantErr: true,
		},
		{
			name: "non-positive price",
			cfg: Config{
				Server:   ServerConfig{Port: 8080},
				Packages: []models.ServicePackage{{ID: "basic", Name: "Basic", Price: 0, Duration: 30}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

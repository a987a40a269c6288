package config

import (
	"strings"
	"testing"
	"time"
)

// baseEnv sets the minimum environment for a loadable configuration.
func baseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SEALING_BASE_URL", "https://api.inaltera.es/sionver")
	t.Setenv("AUTH_ENABLED", "false")
}

func TestLoadDefaults(t *testing.T) {
	baseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Name != "ms_sionver_dashboard" {
		t.Errorf("app name: got %q", cfg.App.Name)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port: got %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.HTTP.Address() != ":8080" {
		t.Errorf("address: got %q", cfg.HTTP.Address())
	}
	if cfg.Registry.PageSize != 10 {
		t.Errorf("page size: got %d, want 10", cfg.Registry.PageSize)
	}
	if cfg.Catalog.CacheTTL != 15*time.Minute {
		t.Errorf("catalog cache ttl: got %s", cfg.Catalog.CacheTTL)
	}
	if cfg.Sealing.MaxUploadBytes != 10<<20 {
		t.Errorf("max upload bytes: got %d", cfg.Sealing.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	baseEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REGISTRY_PAGE_SIZE", "25")
	t.Setenv("SEALING_API_TIMEOUT", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Registry.PageSize != 25 {
		t.Errorf("page size: got %d, want 25", cfg.Registry.PageSize)
	}
	if cfg.Sealing.APITimeout != 90*time.Second {
		t.Errorf("api timeout: got %s", cfg.Sealing.APITimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level: got %q", cfg.Log.Level)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr string
	}{
		{
			name: "missing sealing base url",
			setup: func(t *testing.T) {
				t.Setenv("AUTH_ENABLED", "false")
				t.Setenv("SEALING_BASE_URL", "")
			},
			wantErr: "SEALING_BASE_URL",
		},
		{
			name: "invalid page size",
			setup: func(t *testing.T) {
				baseEnv(t)
				t.Setenv("REGISTRY_PAGE_SIZE", "0")
			},
			wantErr: "REGISTRY_PAGE_SIZE",
		},
		{
			name: "auth enabled without issuer",
			setup: func(t *testing.T) {
				t.Setenv("SEALING_BASE_URL", "https://api.inaltera.es/sionver")
				t.Setenv("AUTH_ENABLED", "true")
				t.Setenv("JWT_ISSUER_URI", "")
				t.Setenv("JWT_JWK_SET_URI", "")
			},
			wantErr: "JWT_ISSUER_URI",
		},
		{
			name: "auth enabled without jwks",
			setup: func(t *testing.T) {
				t.Setenv("SEALING_BASE_URL", "https://api.inaltera.es/sionver")
				t.Setenv("AUTH_ENABLED", "true")
				t.Setenv("JWT_ISSUER_URI", "https://issuer.example.com")
				t.Setenv("JWT_JWK_SET_URI", "")
			},
			wantErr: "JWT_JWK_SET_URI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

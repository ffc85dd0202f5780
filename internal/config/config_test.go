package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"event-polling-api/internal/config"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GRPCPort != "50051" || cfg.WebPort != "8080" {
		t.Fatalf("unexpected ports %q %q", cfg.GRPCPort, cfg.WebPort)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.LogLevel != slog.LevelInfo || !cfg.OTelEnabled || cfg.ServiceName != "event-polling-api" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.DatabaseURL != "" || len(cfg.FrontendOrigins) != 0 {
		t.Fatalf("expected empty database url and origins, got %+v", cfg)
	}
	if got := cfg.RetryPolicy().MaxTries; got != 8 {
		t.Fatalf("retry max = %d, want 8", got)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("FRONTEND_ORIGINS", "http://localhost:3000,https://app.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WRITE_RETRY_MAX", "3")

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"http://localhost:3000", "https://app.example.com"}
	if !slices.Equal(cfg.FrontendOrigins, want) {
		t.Fatalf("origins = %v, want %v", cfg.FrontendOrigins, want)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("log level = %v", cfg.LogLevel)
	}
	if cfg.RetryPolicy().MaxTries != 3 {
		t.Fatalf("retry max = %d", cfg.RetryPolicy().MaxTries)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"bad burst", map[string]string{"JWT_SECRET": "x", "RATE_LIMIT_BURST": "many"}},
		{"zero retries", map[string]string{"JWT_SECRET": "x", "WRITE_RETRY_MAX": "0"}},
		{"zero rps", map[string]string{"JWT_SECRET": "x", "RATE_LIMIT_RPS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.env["JWT_SECRET"] == "" {
				os.Unsetenv("JWT_SECRET")
			}
			_, err := config.Parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "parse env:") {
				t.Fatalf("expected parse env prefix, got %v", err)
			}
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("JWT_SECRET=from-file\nWEB_PORT=9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables already set; register cleanup first
	t.Setenv("JWT_SECRET", "")
	t.Setenv("WEB_PORT", "")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("WEB_PORT")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTSecret != "from-file" || cfg.WebPort != "9090" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("load: %v", err)
	}
}

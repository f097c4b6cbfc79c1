package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("expected no origins by default, got %v", cfg.AllowedOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com, https://staging.example.com")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://staging.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Create temporary config file
	content := `
server:
  port: 9090
  host: "127.0.0.1"

youtube:
  clientVersion: "2.20250101.00.00"
  requestTimeout: "5s"

ratelimit:
  rps: 2
`

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Load config
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected host 127.0.0.1, got %s", cfg.Server.Host)
	}

	if cfg.YouTube.ClientVersion != "2.20250101.00.00" {
		t.Errorf("Expected overridden client version, got %s", cfg.YouTube.ClientVersion)
	}

	if cfg.YouTube.RequestTimeout != 5*time.Second {
		t.Errorf("Expected 5s request timeout, got %v", cfg.YouTube.RequestTimeout)
	}

	if cfg.RateLimit.RPS != 2 {
		t.Errorf("Expected rps 2, got %d", cfg.RateLimit.RPS)
	}

	// Defaults fill the rest
	if cfg.YouTube.ClientName != "WEB" {
		t.Errorf("Expected default client name WEB, got %s", cfg.YouTube.ClientName)
	}

	if cfg.RateLimit.Burst != 10 {
		t.Errorf("Expected default burst 10, got %d", cfg.RateLimit.Burst)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error when loading nonexistent file")
	}
}

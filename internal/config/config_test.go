package config

import (
	"testing"
	"time"
)

// TestLoadDefaults verifies the defaults used when no config file is
// present next to the binary.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Port)
	}
	if cfg.Mode != "release" {
		t.Errorf("default mode = %q, want release", cfg.Mode)
	}
	if cfg.ReadLimit != 32768 {
		t.Errorf("default read_limit = %d, want 32768", cfg.ReadLimit)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("default ping_period = %s, want 54s", cfg.PingPeriod)
	}
	if cfg.SendBuffer != 32 {
		t.Errorf("default send_buffer = %d, want 32", cfg.SendBuffer)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("default allowed_origins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.RateLimit != 20 {
		t.Errorf("default rate_limit = %d, want 20", cfg.RateLimit)
	}
	if cfg.RateInterval != time.Second {
		t.Errorf("default rate_interval = %s, want 1s", cfg.RateInterval)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleConfig = `
app:
  port: 8080
  gin_mode: release
database:
  dsn: "host=localhost user=portal dbname=portal sslmode=disable"
redis:
  addr: "localhost:6379"
  db: 0
jwt:
  secret: "file-secret"
  issuer: "portal-api"
  access_ttl: "30m"
two_factor:
  code_length: 6
  code_validity: "5m"
  max_attempts: 3
  lockout_window: "15m"
  resend_cooldown: "60s"
  delivery: "email"
session:
  idle_timeout: "30m"
rate_limit:
  per_minute: 60
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Errorf("expected 30m access TTL, got %v", cfg.AccessTTL)
	}
	if cfg.CodeValidity != 5*time.Minute {
		t.Errorf("expected 5m code validity, got %v", cfg.CodeValidity)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.LockoutWindow != 15*time.Minute {
		t.Errorf("expected 15m lockout, got %v", cfg.LockoutWindow)
	}
	if cfg.ResendCooldown != 60*time.Second {
		t.Errorf("expected 60s cooldown, got %v", cfg.ResendCooldown)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("expected 30m idle timeout, got %v", cfg.IdleTimeout)
	}
	if cfg.Delivery != "email" {
		t.Errorf("expected email delivery, got %q", cfg.Delivery)
	}
	if cfg.RateLimitPerMin != 60 {
		t.Errorf("expected 60/min, got %d", cfg.RateLimitPerMin)
	}
}

func TestLoadFile_EnvOverridesSecret(t *testing.T) {
	t.Setenv("PORTAL_JWT_SECRET", "env-secret")

	cfg, err := LoadFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("expected the environment secret to win, got %q", cfg.JWTSecret)
	}
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr bool
	}{
		{
			name:    "bad duration",
			mutate:  func(s string) string { return replaceLine(s, `  idle_timeout: "30m"`, `  idle_timeout: "soon"`) },
			wantErr: true,
		},
		{
			name:    "unknown delivery channel",
			mutate:  func(s string) string { return replaceLine(s, `  delivery: "email"`, `  delivery: "carrier-pigeon"`) },
			wantErr: true,
		},
		{
			name:    "missing delivery defaults to email",
			mutate:  func(s string) string { return replaceLine(s, `  delivery: "email"`, ``) },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, tt.mutate(sampleConfig)))
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Delivery != "email" {
				t.Errorf("expected email default, got %q", cfg.Delivery)
			}
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func replaceLine(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}

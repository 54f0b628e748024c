package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults %+v, got %+v", Default(), cfg)
	}
	if got := cfg.Stub.Addr(); got != "127.0.0.1:18080" {
		t.Fatalf("expected default addr 127.0.0.1:18080, got %s", got)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
stub:
  host: 0.0.0.0
  port: 19090
  max_body_bytes: 4096
  shutdown_timeout_seconds: 3
logging:
  development: false
  level: debug
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Stub.Host != "0.0.0.0" || cfg.Stub.Port != 19090 {
		t.Fatalf("expected stub address overrides, got %+v", cfg.Stub)
	}
	if cfg.Stub.MaxBodyBytes != 4096 {
		t.Fatalf("expected max body 4096, got %d", cfg.Stub.MaxBodyBytes)
	}
	if got := cfg.Stub.ShutdownTimeout(); got != 3*time.Second {
		t.Fatalf("expected shutdown timeout 3s, got %v", got)
	}
	if cfg.Logging.Development || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging overrides, got %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SDTNAMES_STUB_PORT", "28080")
	t.Setenv("SDTNAMES_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Stub.Port != 28080 {
		t.Fatalf("expected env port 28080, got %d", cfg.Stub.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env level warn, got %s", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read config error, got %v", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("stub:\n  port: 70000\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "stub.port") {
		t.Fatalf("expected stub.port error, got %v", err)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Default()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "empty host",
			cfg: func() Config {
				c := base
				c.Stub.Host = " "
				return c
			}(),
			want: "stub.host",
		},
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Stub.Port = 0
				return c
			}(),
			want: "stub.port",
		},
		{
			name: "invalid body cap",
			cfg: func() Config {
				c := base
				c.Stub.MaxBodyBytes = 0
				return c
			}(),
			want: "stub.max_body_bytes",
		},
		{
			name: "negative shutdown timeout",
			cfg: func() Config {
				c := base
				c.Stub.ShutdownTimeoutSeconds = -1
				return c
			}(),
			want: "stub.shutdown_timeout_seconds",
		},
		{
			name: "unknown log level",
			cfg: func() Config {
				c := base
				c.Logging.Level = "chatty"
				return c
			}(),
			want: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// clearEnv blanks variables the loader reads so host settings do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "FRONTEND_URL", "NODE_ENV", "WIRECALL_ADDR", "WIRECALL_PORT", "WIRECALL_ENV", "WIRECALL_CLIENT_BUFFER"} {
		t.Setenv(key, "")
	}
}

func TestLoadWritesDefaultConfig(t *testing.T) {
	clearEnv(t)
	logger := zerolog.New(nil)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(&logger, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	logger := zerolog.New(nil)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: \":9000\"\nshutdown_timeout: 2s\nallowed_origin: https://file.example\nclient_buffer: 32\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("WIRECALL_CLIENT_BUFFER", "64")
	t.Setenv("FRONTEND_URL", "https://app.example")
	t.Setenv("NODE_ENV", "production")

	cfg, _, err := Load(&logger, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":9000" {
		t.Errorf("expected addr from file, got %q", cfg.Addr)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("expected shutdown timeout from file, got %v", cfg.ShutdownTimeout)
	}
	if cfg.ClientBuffer != 64 {
		t.Errorf("expected env to override file client_buffer, got %d", cfg.ClientBuffer)
	}
	if cfg.AllowedOrigin != "https://app.example" {
		t.Errorf("expected FRONTEND_URL to set allowed origin, got %q", cfg.AllowedOrigin)
	}
	if !cfg.Production() {
		t.Errorf("expected production mode from NODE_ENV, got %q", cfg.Env)
	}
}

func TestLoadPortEnv(t *testing.T) {
	clearEnv(t)
	logger := zerolog.New(nil)
	path := filepath.Join(t.TempDir(), "config.yaml")

	t.Setenv("PORT", "5050")

	cfg, _, err := Load(&logger, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.ListenAddr(); got != ":5050" {
		t.Fatalf("expected :5050, got %q", got)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)
	logger := zerolog.New(nil)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := Load(&logger, path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestUpdateFrom(t *testing.T) {
	cfg := Default()
	cfg.Port = 5000

	cfg.UpdateFrom(Config{Addr: "127.0.0.1:7000", LogLevel: "debug"})

	if cfg.ListenAddr() != "127.0.0.1:7000" {
		t.Fatalf("expected explicit addr to win, got %q", cfg.ListenAddr())
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level override, got %q", cfg.LogLevel)
	}
	if cfg.AllowedOrigin != "*" {
		t.Fatalf("zero-valued override must not clear allowed origin, got %q", cfg.AllowedOrigin)
	}
}

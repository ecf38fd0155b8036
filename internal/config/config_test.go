package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("expected secret from environment, got %q", cfg.JWT.Secret)
	}
	if cfg.AccessTokenExp() != time.Hour {
		t.Fatalf("expected default 1h expiration, got %v", cfg.AccessTokenExp())
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing JWT secret")
	}
}

func TestLoadConfigYAMLAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: "9090"
jwt:
  secret: "file-secret"
  access_token_expiration: "30m"
database:
  host: "db.internal"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// environment beats the file
	t.Setenv("SERVER_PORT", "7070")

	// make sure the secret really comes from the file
	t.Setenv("JWT_SECRET", "placeholder")
	os.Unsetenv("JWT_SECRET")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Fatalf("expected env override 7070, got %q", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Fatalf("expected secret from file, got %q", cfg.JWT.Secret)
	}
	if cfg.AccessTokenExp() != 30*time.Minute {
		t.Fatalf("expected 30m expiration, got %v", cfg.AccessTokenExp())
	}
	if cfg.Database.Host != "db.internal" {
		t.Fatalf("expected host from file, got %q", cfg.Database.Host)
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "school_test"

	want := "postgres://postgres:pw@localhost:5432/school_test?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

// TestLoadDefaults verifies defaults apply without a config file.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "local" || cfg.DB.Driver != DriverMemory || cfg.Questions.Source != SourceFile {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Questions.Timeout != 10*time.Second || cfg.Sessions.IdleTTL != 2*time.Hour {
		t.Fatalf("unexpected durations %v %v", cfg.Questions.Timeout, cfg.Sessions.IdleTTL)
	}
	if len(cfg.Quiz.Languages) != 1 || cfg.Quiz.Languages[0] != "en" || cfg.Quiz.DefaultLanguage != "en" {
		t.Fatalf("unexpected languages %+v", cfg.Quiz)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
}

// TestLoadFileAndEnv verifies file values and environment overrides.
func TestLoadFileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
env: dev
questions:
  source: http
  url: http://bank.local
  timeout: 3s
quiz:
  languages: [en, de]
  default_language: de
database:
  driver: sqlite
sessions:
  idle_ttl: 30m
`)
	t.Setenv("DATABASE_URL", "file:prefs.db")
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "production" {
		t.Fatalf("expected APP_ENV override, got %q", cfg.Env)
	}
	if cfg.Questions.Source != SourceHTTP || cfg.Questions.URL != "http://bank.local" || cfg.Questions.Timeout != 3*time.Second {
		t.Fatalf("unexpected questions %+v", cfg.Questions)
	}
	if len(cfg.Quiz.Languages) != 2 || cfg.Quiz.DefaultLanguage != "de" {
		t.Fatalf("unexpected quiz %+v", cfg.Quiz)
	}
	dsn, err := cfg.DB.DSN()
	if err != nil || dsn != "file:prefs.db" {
		t.Fatalf("unexpected dsn %q (%v)", dsn, err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		t.Fatalf("expected token, got %v", err)
	}
	if cfg.Sessions.IdleTTL != 30*time.Minute {
		t.Fatalf("unexpected idle ttl %v", cfg.Sessions.IdleTTL)
	}
}

// TestLoadRequiresDatabaseURL verifies SQL drivers need a DSN.
func TestLoadRequiresDatabaseURL(t *testing.T) {
	dir := writeConfig(t, "database:\n  driver: postgres\n")
	t.Setenv("DATABASE_URL", "")

	_, err := Load(dir)
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected missing env error, got %v", err)
	}
}

// TestLoadRejectsUnknownDriver verifies driver names are checked.
func TestLoadRejectsUnknownDriver(t *testing.T) {
	dir := writeConfig(t, "database:\n  driver: mongo\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected driver error")
	}
}

// TestLoadRejectsUnknownSource verifies question source names are checked.
func TestLoadRejectsUnknownSource(t *testing.T) {
	dir := writeConfig(t, "questions:\n  source: ftp\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected source error")
	}
}

// TestRequireTelegramMissing verifies an empty token is reported.
func TestRequireTelegramMissing(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireTelegram(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected missing env error, got %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRAFTSTATS_DB", "")
	t.Setenv("DRAFTSTATS_LOG_LEVEL", "")
	t.Setenv("DRAFTSTATS_MODEL", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join(".draftstats", "stats.db")) {
		t.Errorf("unexpected default db path %q", cfg.DBPath)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: want %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model: want %q, got %q", DefaultModel, cfg.Model)
	}
}

func TestLoadFromDotenv(t *testing.T) {
	// godotenv never overrides variables that are already set, so clear them.
	for _, k := range []string{"DRAFTSTATS_DB", "DRAFTSTATS_LOG_LEVEL", "DRAFTSTATS_MODEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	body := "DRAFTSTATS_DB=/tmp/draft.db\nDRAFTSTATS_LOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(body), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := LoadFrom(envFile)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DBPath != "/tmp/draft.db" {
		t.Errorf("DBPath: want /tmp/draft.db, got %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: want debug, got %q", cfg.LogLevel)
	}
}

func TestEnvironmentWinsOverDotenv(t *testing.T) {
	t.Setenv("DRAFTSTATS_MODEL", "from-env")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("DRAFTSTATS_MODEL=from-file\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := LoadFrom(envFile)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("Model: want from-env, got %q", cfg.Model)
	}
}

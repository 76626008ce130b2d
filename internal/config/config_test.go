package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pokesight/pokesight/internal/catalog"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POKESIGHT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.URL != catalog.DefaultBaseURL {
		t.Errorf("catalog url = %q", cfg.Catalog.URL)
	}
	if cfg.Catalog.Format != catalog.DefaultFormat {
		t.Errorf("catalog format = %q", cfg.Catalog.Format)
	}
	if cfg.Catalog.TTL() != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", cfg.Catalog.TTL())
	}
	if cfg.Database.Path == "" {
		t.Error("database path should have a default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[catalog]
format = "gen9uu"
ttl_hours = 6

[database]
path = "/tmp/test-pokesight.db"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("POKESIGHT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Format != "gen9uu" {
		t.Errorf("format = %q, want gen9uu", cfg.Catalog.Format)
	}
	if cfg.Catalog.TTL() != 6*time.Hour {
		t.Errorf("ttl = %v, want 6h", cfg.Catalog.TTL())
	}
	if cfg.Database.Path != "/tmp/test-pokesight.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	// Unset keys keep their defaults.
	if cfg.Catalog.URL != catalog.DefaultBaseURL {
		t.Errorf("catalog url = %q", cfg.Catalog.URL)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("POKESIGHT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("POKESIGHT_CATALOG_FORMAT", "gen9vgc2024regh")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Format != "gen9vgc2024regh" {
		t.Errorf("format = %q, want env override", cfg.Catalog.Format)
	}
}

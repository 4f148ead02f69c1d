// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so no stray config.yaml interferes.
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8710 {
		t.Errorf("Server.Port = %d, want 8710", cfg.Server.Port)
	}
	if cfg.Engine.RelevanceFloor != 0.3 {
		t.Errorf("Engine.RelevanceFloor = %f, want 0.3", cfg.Engine.RelevanceFloor)
	}
	if cfg.Engine.MaxResults != 8 {
		t.Errorf("Engine.MaxResults = %d, want 8", cfg.Engine.MaxResults)
	}
	if cfg.Linker.MaxPerEntity != 3 {
		t.Errorf("Linker.MaxPerEntity = %d, want 3", cfg.Linker.MaxPerEntity)
	}
	if cfg.Engine.CacheTTL != 5*time.Minute {
		t.Errorf("Engine.CacheTTL = %s, want 5m", cfg.Engine.CacheTTL)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false for default environment")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)

	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("SITE_BASE_URL", "https://directory.example.com")
	t.Setenv("ENGINE_RELEVANCE_FLOOR", "0.5")
	t.Setenv("LINKER_MAX_PER_ENTITY", "2")
	t.Setenv("DICTIONARY_STATIC_ENTITIES", "ChatGPT, Midjourney ,Notion")
	t.Setenv("STORE_IN_MEMORY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Site.BaseURL != "https://directory.example.com" {
		t.Errorf("Site.BaseURL = %q", cfg.Site.BaseURL)
	}
	if cfg.Engine.RelevanceFloor != 0.5 {
		t.Errorf("Engine.RelevanceFloor = %f, want 0.5", cfg.Engine.RelevanceFloor)
	}
	if cfg.Linker.MaxPerEntity != 2 {
		t.Errorf("Linker.MaxPerEntity = %d, want 2", cfg.Linker.MaxPerEntity)
	}
	if !cfg.Store.InMemory {
		t.Error("Store.InMemory = false, want true")
	}

	want := []string{"ChatGPT", "Midjourney", "Notion"}
	if len(cfg.Dictionary.StaticEntities) != len(want) {
		t.Fatalf("StaticEntities = %v, want %v", cfg.Dictionary.StaticEntities, want)
	}
	for i := range want {
		if cfg.Dictionary.StaticEntities[i] != want[i] {
			t.Errorf("StaticEntities = %v, want %v", cfg.Dictionary.StaticEntities, want)
			break
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
site:
  name: File Site
  base_url: https://file.example.com
server:
  port: 9200
engine:
  max_results: 4
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Site.Name != "File Site" || cfg.Server.Port != 9200 || cfg.Engine.MaxResults != 4 {
		t.Errorf("file values not applied: %+v", cfg.Site)
	}

	// Environment still wins over the file.
	t.Setenv("HTTP_PORT", "9300")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9300 {
		t.Errorf("Server.Port = %d, want env override 9300", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty site name", func(c *Config) { c.Site.Name = "" }, true},
		{"trailing slash base url", func(c *Config) { c.Site.BaseURL = "https://x.com/" }, true},
		{"non-http base url", func(c *Config) { c.Site.BaseURL = "ftp://x.com" }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown environment", func(c *Config) { c.Server.Environment = "prod" }, true},
		{"negative floor", func(c *Config) { c.Engine.RelevanceFloor = -0.1 }, true},
		{"floor above one", func(c *Config) { c.Engine.RelevanceFloor = 1.1 }, true},
		{"zero max results", func(c *Config) { c.Engine.MaxResults = 0 }, true},
		{"zero max per entity", func(c *Config) { c.Linker.MaxPerEntity = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// chdirTemp switches the working directory to a fresh temp dir for the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
	return dir
}

// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/interlink/config.yaml",
	"/etc/interlink/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:    "Interlink Directory",
			BaseURL: "http://localhost:8710",
			LogoURL: "",
		},
		Server: ServerConfig{
			Port:        8710,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Store: StoreConfig{
			Path:       "/data/interlink",
			InMemory:   false,
			SeedFile:   "",
			GCInterval: 10 * time.Minute,
		},
		Engine: EngineConfig{
			TagWeight:             0.3,
			CategoryExactWeight:   0.4,
			CategoryPartialWeight: 0.2,
			RelevanceFloor:        0.3,
			MaxResults:            8,
			MinTagLength:          0, // Substring matching kept permissive; see EngineConfig docs
			CacheTTL:              5 * time.Minute,
		},
		Linker: LinkerConfig{
			MaxPerEntity:   3,
			MaxSuggestions: 10,
			TitleWeight:    0.85,
			TagWeight:      0.6,
		},
		Dictionary: DictionaryConfig{
			StaticEntities:  []string{},
			RebuildInterval: 30 * time.Second,
		},
		Authors: AuthorsConfig{
			Profiles:    []AuthorProfileConfig{},
			DefaultName: "",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// SITE_BASE_URL -> site.base_url, STORE_SEED_FILE -> store.seed_file
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values become slices for known slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"dictionary.static_entities",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - SITE_NAME -> site.name
//   - SITE_BASE_URL -> site.base_url
//   - HTTP_PORT -> server.port
//   - STORE_SEED_FILE -> store.seed_file
//   - ENGINE_RELEVANCE_FLOOR -> engine.relevance_floor
//   - LINKER_MAX_PER_ENTITY -> linker.max_per_entity
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"site_name":     "site.name",
		"site_base_url": "site.base_url",
		"site_logo_url": "site.logo_url",

		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		"store_path":        "store.path",
		"store_in_memory":   "store.in_memory",
		"store_seed_file":   "store.seed_file",
		"store_gc_interval": "store.gc_interval",

		"engine_tag_weight":              "engine.tag_weight",
		"engine_category_exact_weight":   "engine.category_exact_weight",
		"engine_category_partial_weight": "engine.category_partial_weight",
		"engine_relevance_floor":         "engine.relevance_floor",
		"engine_max_results":             "engine.max_results",
		"engine_min_tag_length":          "engine.min_tag_length",
		"engine_cache_ttl":               "engine.cache_ttl",

		"linker_max_per_entity":  "linker.max_per_entity",
		"linker_max_suggestions": "linker.max_suggestions",
		"linker_title_weight":    "linker.title_weight",
		"linker_tag_weight":      "linker.tag_weight",

		"dictionary_static_entities":  "dictionary.static_entities",
		"dictionary_rebuild_interval": "dictionary.rebuild_interval",

		"authors_default_name": "authors.default_name",

		"rate_limit_reqs":    "security.rate_limit_reqs",
		"rate_limit_window":  "security.rate_limit_window",
		"disable_rate_limit": "security.rate_limit_disabled",
		"cors_origins":       "security.cors_origins",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unknown env vars are ignored rather than polluting the config map.
	return ""
}

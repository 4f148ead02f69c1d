// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package config loads and validates Interlink configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (HTTP_PORT, SITE_BASE_URL, ...)
package config

import "time"

// Config is the root configuration for the Interlink server.
type Config struct {
	Site       SiteConfig       `koanf:"site"`
	Server     ServerConfig     `koanf:"server"`
	Store      StoreConfig      `koanf:"store"`
	Engine     EngineConfig     `koanf:"engine"`
	Linker     LinkerConfig     `koanf:"linker"`
	Dictionary DictionaryConfig `koanf:"dictionary"`
	Authors    AuthorsConfig    `koanf:"authors"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// SiteConfig identifies the publisher site that Interlink serves.
// These values feed the entity graph assembler's Organization node and
// canonical URL derivation.
type SiteConfig struct {
	// Name is the publisher display name.
	Name string `koanf:"name"`

	// BaseURL is the canonical site origin, without trailing slash
	// (e.g. https://example.com).
	BaseURL string `koanf:"base_url"`

	// LogoURL is an optional absolute URL to the publisher logo.
	LogoURL string `koanf:"logo_url"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment mode: "development", "staging", "production".
	// Default: "development"
	Environment string `koanf:"environment"`
}

// StoreConfig holds content store settings.
//
// Environment Variables:
//   - STORE_PATH: BadgerDB directory (default: /data/interlink)
//   - STORE_IN_MEMORY: run Badger in memory, no persistence (default: false)
//   - STORE_SEED_FILE: JSON catalog to load at startup (optional)
//   - STORE_GC_INTERVAL: value-log GC interval (default: 10m)
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	SeedFile   string        `koanf:"seed_file"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EngineConfig holds relevance scoring and selection settings.
//
// The defaults are the tuned production values; they are exposed as
// configuration because the tag-containment behavior trades precision for
// recall and deployments with very short tags may want to raise MinTagLength.
type EngineConfig struct {
	// TagWeight is the score increment per matching tag pair.
	// Default: 0.3
	TagWeight float64 `koanf:"tag_weight"`

	// CategoryExactWeight is the increment for an exact category match.
	// Default: 0.4
	CategoryExactWeight float64 `koanf:"category_exact_weight"`

	// CategoryPartialWeight is the increment when one category name
	// contains the other. Default: 0.2
	CategoryPartialWeight float64 `koanf:"category_partial_weight"`

	// RelevanceFloor is the minimum score below which a candidate is
	// treated as noise and dropped. Default: 0.3
	RelevanceFloor float64 `koanf:"relevance_floor"`

	// MaxResults is the hard cap on related-content results regardless of
	// the caller-supplied limit. Default: 8
	MaxResults int `koanf:"max_results"`

	// MinTagLength drops tags shorter than this from matching.
	// 0 disables the guard (matches the tuned behavior; short tags can
	// produce substring false positives).
	MinTagLength int `koanf:"min_tag_length"`

	// CacheTTL is the related-content response cache lifetime.
	// 0 disables caching. Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// LinkerConfig holds auto-linker and suggestion analyzer settings.
type LinkerConfig struct {
	// MaxPerEntity caps rewritten occurrences per entity per document.
	// Default: 3
	MaxPerEntity int `koanf:"max_per_entity"`

	// MaxSuggestions caps the suggestion analyzer output. Default: 10
	MaxSuggestions int `koanf:"max_suggestions"`

	// TitleWeight is the suggestion relevance for a title match. Default: 0.85
	TitleWeight float64 `koanf:"title_weight"`

	// TagWeight is the suggestion relevance for a tag match. Default: 0.6
	TagWeight float64 `koanf:"tag_weight"`
}

// DictionaryConfig holds entity dictionary settings.
type DictionaryConfig struct {
	// StaticEntities lists well known entity names without internal pages.
	// These are emphasized rather than linked.
	StaticEntities []string `koanf:"static_entities"`

	// RebuildInterval throttles rebuild attempts after a failed build so a
	// broken store does not cause a rebuild stampede. Default: 30s
	RebuildInterval time.Duration `koanf:"rebuild_interval"`
}

// AuthorsConfig holds the static author directory.
type AuthorsConfig struct {
	// Profiles maps author names to their topic keywords, comma separated
	// per entry as "Name=topic1|topic2" when set from the environment.
	Profiles []AuthorProfileConfig `koanf:"profiles"`

	// DefaultName is the author returned when no topic hint matches.
	DefaultName string `koanf:"default_name"`
}

// AuthorProfileConfig is one configured author profile.
type AuthorProfileConfig struct {
	Name   string   `koanf:"name"`
	URL    string   `koanf:"url"`
	Bio    string   `koanf:"bio"`
	Topics []string `koanf:"topics"`
}

// SecurityConfig holds the API hardening settings.
type SecurityConfig struct {
	// RateLimitReqs is the per-IP request budget per window. Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window. Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns off rate limiting (CI only).
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Load loads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

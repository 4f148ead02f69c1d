// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateLinker(); err != nil {
		return err
	}
	return c.validateLogging()
}

// validateSite validates the publisher identity settings.
func (c *Config) validateSite() error {
	if c.Site.Name == "" {
		return fmt.Errorf("SITE_NAME must not be empty")
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("SITE_BASE_URL is required")
	}
	if err := validateHTTPURL(c.Site.BaseURL, "SITE_BASE_URL"); err != nil {
		return err
	}
	if strings.HasSuffix(c.Site.BaseURL, "/") {
		return fmt.Errorf("SITE_BASE_URL must not end with a trailing slash")
	}
	return nil
}

// validateServer validates HTTP server settings.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

// validateEngine validates relevance scoring settings.
func (c *Config) validateEngine() error {
	if c.Engine.TagWeight < 0 || c.Engine.TagWeight > 1 {
		return fmt.Errorf("ENGINE_TAG_WEIGHT must be in [0,1], got %f", c.Engine.TagWeight)
	}
	if c.Engine.CategoryExactWeight < 0 || c.Engine.CategoryExactWeight > 1 {
		return fmt.Errorf("ENGINE_CATEGORY_EXACT_WEIGHT must be in [0,1], got %f", c.Engine.CategoryExactWeight)
	}
	if c.Engine.CategoryPartialWeight < 0 || c.Engine.CategoryPartialWeight > 1 {
		return fmt.Errorf("ENGINE_CATEGORY_PARTIAL_WEIGHT must be in [0,1], got %f", c.Engine.CategoryPartialWeight)
	}
	if c.Engine.RelevanceFloor < 0 || c.Engine.RelevanceFloor > 1 {
		return fmt.Errorf("ENGINE_RELEVANCE_FLOOR must be in [0,1], got %f", c.Engine.RelevanceFloor)
	}
	if c.Engine.MaxResults < 1 {
		return fmt.Errorf("ENGINE_MAX_RESULTS must be at least 1, got %d", c.Engine.MaxResults)
	}
	if c.Engine.MinTagLength < 0 {
		return fmt.Errorf("ENGINE_MIN_TAG_LENGTH must not be negative, got %d", c.Engine.MinTagLength)
	}
	return nil
}

// validateLinker validates auto-linker settings.
func (c *Config) validateLinker() error {
	if c.Linker.MaxPerEntity < 1 {
		return fmt.Errorf("LINKER_MAX_PER_ENTITY must be at least 1, got %d", c.Linker.MaxPerEntity)
	}
	if c.Linker.MaxSuggestions < 1 {
		return fmt.Errorf("LINKER_MAX_SUGGESTIONS must be at least 1, got %d", c.Linker.MaxSuggestions)
	}
	return nil
}

// validateLogging validates logging settings.
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL checks that a value parses as an absolute http(s) URL.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

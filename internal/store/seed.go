// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package store

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cpalmer418/interlink/internal/logging"
	"github.com/cpalmer418/interlink/internal/models"
)

// seedFile is the on-disk seed format: a flat list of catalog items.
type seedFile struct {
	Items []models.ContentItem `json:"items" validate:"required,dive"`
}

// SeedFromFile loads catalog items from a JSON file into the store.
// Items are validated before any write happens, so a malformed seed file
// leaves the catalog untouched. Items without an ID are assigned one.
func (s *Store) SeedFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	// IDs are optional in seed files; assign before validation.
	for i := range seed.Items {
		if seed.Items[i].ID == "" {
			seed.Items[i].ID = uuid.NewString()
		}
	}

	validate := validator.New()
	for i, item := range seed.Items {
		if err := validate.Struct(item); err != nil {
			return 0, fmt.Errorf("seed item %d (%q): %w", i, item.Slug, err)
		}
	}

	seen := make(map[string]struct{}, len(seed.Items))
	n := 0
	for _, item := range seed.Items {
		key := string(item.Type) + ":" + item.Slug
		if _, dup := seen[key]; dup {
			logging.Warn().
				Str("slug", item.Slug).
				Str("type", string(item.Type)).
				Msg("Duplicate seed item skipped")
			continue
		}
		seen[key] = struct{}{}

		if err := s.Put(ctx, item); err != nil {
			return n, fmt.Errorf("seed item %q: %w", item.Slug, err)
		}
		n++
	}

	logging.Info().
		Int("items", n).
		Str("path", path).
		Msg("Catalog seeded")
	return n, nil
}

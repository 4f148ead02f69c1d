// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package store persists the content catalog in BadgerDB. Items are keyed
// by type and slug so lookups and per-type scans never touch unrelated
// records.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cpalmer418/interlink/internal/logging"
	"github.com/cpalmer418/interlink/internal/metrics"
	"github.com/cpalmer418/interlink/internal/models"
)

// Key layout for BadgerDB storage
const itemKeyPrefix = "item:"

// ErrItemNotFound is returned when no item exists for a type/slug pair.
var ErrItemNotFound = errors.New("store: item not found")

// Config controls how the catalog store opens its backing database.
type Config struct {
	// Path is the on-disk database directory. Empty selects an in-memory
	// database, used by tests and ephemeral deployments.
	Path string
}

// Store is a BadgerDB-backed content catalog. Safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open creates or opens the catalog database at cfg.Path.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	// Badger's default logger prints to stderr outside our structured
	// pipeline; route it through zerolog instead.
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func itemKey(contentType models.ContentType, slug string) []byte {
	return []byte(itemKeyPrefix + string(contentType) + ":" + strings.ToLower(slug))
}

// Put stores or replaces a content item.
func (s *Store) Put(ctx context.Context, item models.ContentItem) error {
	if !item.Type.Valid() {
		return fmt.Errorf("put %q: unknown content type %q", item.Slug, item.Type)
	}
	if item.Slug == "" {
		return fmt.Errorf("put %q: empty slug", item.Title)
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item %q: %w", item.Slug, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(itemKey(item.Type, item.Slug), data); err != nil {
			return fmt.Errorf("set item %q: %w", item.Slug, err)
		}
		return nil
	})
}

// FindBySlug retrieves one item by type and slug.
func (s *Store) FindBySlug(ctx context.Context, contentType models.ContentType, slug string) (models.ContentItem, error) {
	var item models.ContentItem

	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(contentType, slug))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("get item %q: %w", slug, err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if err != nil {
		return models.ContentItem{}, err
	}

	metrics.StoreItemReads.WithLabelValues(string(contentType)).Inc()
	return item, nil
}

// FindPublished scans all published items of one type, excluding
// excludeSlug when non-empty. Results come back in key order, which is
// stable across calls.
func (s *Store) FindPublished(ctx context.Context, contentType models.ContentType, excludeSlug string) ([]models.ContentItem, error) {
	excluded := strings.ToLower(strings.TrimSpace(excludeSlug))
	prefix := []byte(itemKeyPrefix + string(contentType) + ":")

	var items []models.ContentItem
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var item models.ContentItem
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("decode item %s: %w", it.Item().Key(), err)
			}
			if !item.Published {
				continue
			}
			if excluded != "" && strings.ToLower(item.Slug) == excluded {
				continue
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StoreItemReads.WithLabelValues(string(contentType)).Add(float64(len(items)))
	return items, nil
}

// Count reports how many items of one type exist, published or not.
func (s *Store) Count(ctx context.Context, contentType models.ContentType) (int, error) {
	prefix := []byte(itemKeyPrefix + string(contentType) + ":")

	var n int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunValueLogGC triggers one value-log garbage collection pass. Returns
// badger.ErrNoRewrite when nothing needed collecting; callers treat that as
// a normal idle result.
func (s *Store) RunValueLogGC() error {
	return s.db.RunValueLogGC(0.5)
}

// badgerLogger adapts badger's logger interface onto zerolog. Badger is
// chatty at INFO during compaction, so its info output maps to debug.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+strings.TrimSpace(format), args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+strings.TrimSpace(format), args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+strings.TrimSpace(format), args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+strings.TrimSpace(format), args...)
}

// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package entity implements the entity dictionary, the body-text
// auto-linker and the link suggestion analyzer.
//
// The dictionary is the process-wide registry of known entity names. It is
// built lazily on first use from two sources: the published Product items in
// the content store, and a curated static list of well known entities that
// have no internal page. The build-once-read-many discipline means lookups
// never block on I/O after the first build; concurrent first callers may
// redundantly build the snapshot, which is wasted work but not a correctness
// hazard (both builds are equivalent, last writer wins).
package entity

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/cpalmer418/interlink/internal/logging"
	"github.com/cpalmer418/interlink/internal/metrics"
	"github.com/cpalmer418/interlink/internal/models"
)

// Entry is one dictionary entry: a display name and, when the entity has an
// internal page, its canonical slug. Entries without a slug are emphasized
// rather than linked.
type Entry struct {
	DisplayName   string `json:"display_name"`
	CanonicalSlug string `json:"canonical_slug,omitempty"`
}

// ProductSource supplies the published products that seed the dictionary.
// Implemented by the content store.
type ProductSource interface {
	FindPublished(ctx context.Context, t models.ContentType, excludeSlug string) ([]models.ContentItem, error)
}

// DictionaryConfig contains configuration for the dictionary.
type DictionaryConfig struct {
	// StaticEntities lists well known entity names without internal pages.
	StaticEntities []string

	// RebuildInterval throttles rebuild attempts after a failed build.
	// Default: 30s
	RebuildInterval time.Duration
}

// Dictionary is the canonical registry mapping entity display names to
// stable slugs. Safe for concurrent use; reads after the first build are
// lock-free through an atomic snapshot.
type Dictionary struct {
	source   ProductSource
	static   []string
	snapshot atomic.Pointer[snapshot]

	// rebuildLimiter throttles rebuild attempts when the backing store is
	// failing, so a broken store does not cause a rebuild stampede.
	rebuildLimiter *rate.Limiter
}

// snapshot is one immutable build of the dictionary.
type snapshot struct {
	// entries ordered by descending display-name length. The order is a
	// correctness requirement for the auto-linker: a short name that is a
	// substring of a longer one must not match first and fragment it.
	entries []Entry

	// byName maps lower-cased display names to canonical slugs.
	byName map[string]Entry

	// complete is false when the build fell back to the static list only.
	complete bool
}

// NewDictionary creates a dictionary over the given product source.
func NewDictionary(source ProductSource, cfg DictionaryConfig) *Dictionary {
	if cfg.RebuildInterval <= 0 {
		cfg.RebuildInterval = 30 * time.Second
	}

	static := make([]string, 0, len(cfg.StaticEntities))
	for _, name := range cfg.StaticEntities {
		name = strings.TrimSpace(name)
		if name != "" {
			static = append(static, name)
		}
	}

	return &Dictionary{
		source:         source,
		static:         static,
		rebuildLimiter: rate.NewLimiter(rate.Every(cfg.RebuildInterval), 1),
	}
}

// Resolve returns the canonical slug for a display name, or empty string
// when the entity is known by name only or not known at all. Lookup is
// case-insensitive. The boolean reports whether the name is in the
// dictionary.
func (d *Dictionary) Resolve(ctx context.Context, displayName string) (string, bool) {
	snap := d.load(ctx)
	entry, ok := snap.byName[strings.ToLower(strings.TrimSpace(displayName))]
	if !ok {
		return "", false
	}
	return entry.CanonicalSlug, true
}

// Entries returns all dictionary entries ordered by descending display-name
// length. The returned slice is shared with the snapshot and must not be
// mutated.
func (d *Dictionary) Entries(ctx context.Context) []Entry {
	return d.load(ctx).entries
}

// Complete reports whether the current snapshot was built from the full
// product source. False means the last build fell back to the static list,
// typically because the content store was unreachable.
func (d *Dictionary) Complete(ctx context.Context) bool {
	return d.load(ctx).complete
}

// load returns the current snapshot, building one if none exists yet. An
// incomplete snapshot (static fallback) is retried on later calls, subject
// to the rebuild throttle.
func (d *Dictionary) load(ctx context.Context) *snapshot {
	if snap := d.snapshot.Load(); snap != nil {
		if snap.complete || !d.rebuildLimiter.Allow() {
			return snap
		}
	} else {
		// The first build spends a token too; otherwise a failed first
		// build leaves the burst token for the very next read and the
		// throttle only engages from the third.
		d.rebuildLimiter.Allow()
	}

	snap := d.build(ctx)

	// Keep a complete snapshot over a concurrent fallback build.
	if prev := d.snapshot.Load(); prev != nil && prev.complete && !snap.complete {
		return prev
	}
	d.snapshot.Store(snap)
	return snap
}

// build constructs a fresh snapshot. A failing product query degrades to the
// static list only; build never returns an error to lookup callers.
func (d *Dictionary) build(ctx context.Context) *snapshot {
	entries := make([]Entry, 0, len(d.static))
	complete := true

	products, err := d.source.FindPublished(ctx, models.TypeProduct, "")
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Entity dictionary falling back to static list")
		complete = false
	} else {
		for _, p := range products {
			if p.Title == "" || p.Slug == "" {
				continue
			}
			entries = append(entries, Entry{DisplayName: p.Title, CanonicalSlug: p.Slug})
		}
	}

	for _, name := range d.static {
		entries = append(entries, Entry{DisplayName: name})
	}

	// Longest name first; ties alphabetical so the order is deterministic.
	sort.SliceStable(entries, func(i, j int) bool {
		li, lj := len(entries[i].DisplayName), len(entries[j].DisplayName)
		if li != lj {
			return li > lj
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	// Dedupe by lower-cased name. An entry with a slug beats a name-only
	// entry for the same name.
	byName := make(map[string]Entry, len(entries))
	deduped := make([]Entry, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.DisplayName)
		if existing, ok := byName[key]; ok {
			if existing.CanonicalSlug == "" && e.CanonicalSlug != "" {
				byName[key] = e
				for i := range deduped {
					if strings.EqualFold(deduped[i].DisplayName, e.DisplayName) {
						deduped[i] = e
						break
					}
				}
			}
			continue
		}
		byName[key] = e
		deduped = append(deduped, e)
	}

	metrics.RecordDictionaryBuild(!complete, len(deduped))

	return &snapshot{
		entries:  deduped,
		byName:   byName,
		complete: complete,
	}
}

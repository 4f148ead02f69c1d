// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package engine ties the catalog store, relevance selector, entity
// dictionary, auto-linker, suggestion analyzer and graph assembler into the
// operations the HTTP layer exposes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cpalmer418/interlink/internal/entity"
	"github.com/cpalmer418/interlink/internal/graph"
	"github.com/cpalmer418/interlink/internal/logging"
	"github.com/cpalmer418/interlink/internal/metrics"
	"github.com/cpalmer418/interlink/internal/models"
	"github.com/cpalmer418/interlink/internal/relevance"
	"github.com/cpalmer418/interlink/internal/store"
)

// ErrContentNotFound is returned when the requested subject does not exist
// or is unpublished.
var ErrContentNotFound = errors.New("engine: content not found")

// ContentRepository supplies catalog items. Implemented by the store
// package; tests substitute in-memory fakes.
type ContentRepository interface {
	FindBySlug(ctx context.Context, t models.ContentType, slug string) (models.ContentItem, error)
	FindPublished(ctx context.Context, t models.ContentType, excludeSlug string) ([]models.ContentItem, error)
}

// AuthorDirectory resolves topic hints to author profiles.
type AuthorDirectory interface {
	Lookup(topicHint string) (models.AuthorProfile, bool)
}

// Config holds engine facade settings.
type Config struct {
	// CacheTTL is the related-content cache lifetime. 0 disables caching.
	CacheTTL time.Duration
}

// Engine coordinates the relevance and linking subsystems.
// It is safe for concurrent use.
type Engine struct {
	repo      ContentRepository
	authors   AuthorDirectory
	selector  *relevance.Selector
	dict      *entity.Dictionary
	linker    *entity.Linker
	suggester *entity.Suggester
	assembler *graph.Assembler

	cacheTTL time.Duration
	cache    map[string]cacheEntry
	cacheMu  sync.RWMutex
}

// cacheEntry holds one cached related-content result.
type cacheEntry struct {
	results   []models.RankedItem
	expiresAt time.Time
}

// New creates the engine facade. All collaborators are required except
// authors, which may be nil when no author directory is configured.
func New(cfg Config, repo ContentRepository, authors AuthorDirectory, selector *relevance.Selector, dict *entity.Dictionary, linker *entity.Linker, suggester *entity.Suggester, assembler *graph.Assembler) (*Engine, error) {
	if repo == nil {
		return nil, errors.New("engine: nil content repository")
	}
	if selector == nil || dict == nil || linker == nil || suggester == nil || assembler == nil {
		return nil, errors.New("engine: missing collaborator")
	}

	return &Engine{
		repo:      repo,
		authors:   authors,
		selector:  selector,
		dict:      dict,
		linker:    linker,
		suggester: suggester,
		assembler: assembler,
		cacheTTL:  cfg.CacheTTL,
		cache:     make(map[string]cacheEntry),
	}, nil
}

// subject fetches the page the caller is asking about, mapping store
// misses and unpublished items to ErrContentNotFound.
func (e *Engine) subject(ctx context.Context, t models.ContentType, slug string) (models.ContentItem, error) {
	if !t.Valid() {
		return models.ContentItem{}, fmt.Errorf("%w: unknown type %q", ErrContentNotFound, t)
	}

	item, err := e.repo.FindBySlug(ctx, t, slug)
	if errors.Is(err, store.ErrItemNotFound) {
		return models.ContentItem{}, fmt.Errorf("%w: %s/%s", ErrContentNotFound, t, slug)
	}
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("fetch subject %s/%s: %w", t, slug, err)
	}
	if !item.Published {
		return models.ContentItem{}, fmt.Errorf("%w: %s/%s", ErrContentNotFound, t, slug)
	}
	return item, nil
}

// GetRelatedContent returns the ranked related items for one subject page.
// Results are cached per subject and limit for the configured TTL.
func (e *Engine) GetRelatedContent(ctx context.Context, t models.ContentType, slug string, limit int) ([]models.RankedItem, error) {
	cacheKey := fmt.Sprintf("%s:%s:%d", t, slug, limit)
	if cached, ok := e.cachedRelated(cacheKey); ok {
		metrics.RelatedCacheHits.Inc()
		return cached, nil
	}
	metrics.RelatedCacheMisses.Inc()

	subject, err := e.subject(ctx, t, slug)
	if err != nil {
		return nil, err
	}

	pools, err := e.candidatePools(ctx, subject.Slug)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := e.selector.SelectRelated(subject, pools, limit)
	metrics.RecordSelection(time.Since(start))

	e.storeRelated(cacheKey, results)
	return results, nil
}

// candidatePools gathers the published candidates per content type,
// excluding the subject itself.
func (e *Engine) candidatePools(ctx context.Context, excludeSlug string) (relevance.Pools, error) {
	var pools relevance.Pools
	var err error

	if pools.Products, err = e.repo.FindPublished(ctx, models.TypeProduct, excludeSlug); err != nil {
		return pools, fmt.Errorf("load product pool: %w", err)
	}
	if pools.Articles, err = e.repo.FindPublished(ctx, models.TypeArticle, excludeSlug); err != nil {
		return pools, fmt.Errorf("load article pool: %w", err)
	}
	if pools.Categories, err = e.repo.FindPublished(ctx, models.TypeCategory, excludeSlug); err != nil {
		return pools, fmt.Errorf("load category pool: %w", err)
	}
	return pools, nil
}

// RewriteWithEntityLinks rewrites entity mentions in body text into
// markdown links or emphasis. The rewrite never fails: when the dictionary
// is degraded the linker works from whatever entries are available.
func (e *Engine) RewriteWithEntityLinks(ctx context.Context, body string) string {
	return e.linker.AutoLink(ctx, body, e.dict)
}

// SuggestLinks analyzes body text against the published catalog and
// returns ranked internal-link opportunities for editorial review.
func (e *Engine) SuggestLinks(ctx context.Context, body, subjectSlug string) ([]models.Suggestion, error) {
	products, err := e.repo.FindPublished(ctx, models.TypeProduct, subjectSlug)
	if err != nil {
		return nil, fmt.Errorf("load suggestion candidates: %w", err)
	}
	articles, err := e.repo.FindPublished(ctx, models.TypeArticle, subjectSlug)
	if err != nil {
		return nil, fmt.Errorf("load suggestion candidates: %w", err)
	}

	candidates := make([]models.ContentItem, 0, len(products)+len(articles))
	candidates = append(candidates, products...)
	candidates = append(candidates, articles...)

	return e.suggester.SuggestLinks(body, candidates, subjectSlug), nil
}

// BuildEntityGraph assembles the entity graph for one subject page:
// publisher, page, author (matched by category then first tag), category
// and the pages it mentions.
func (e *Engine) BuildEntityGraph(ctx context.Context, t models.ContentType, slug string) (*graph.Graph, error) {
	subject, err := e.subject(ctx, t, slug)
	if err != nil {
		return nil, err
	}

	var author *models.AuthorProfile
	if e.authors != nil {
		hint := subject.Category
		if hint == "" && len(subject.Tags) > 0 {
			hint = subject.Tags[0]
		}
		if profile, ok := e.authors.Lookup(hint); ok {
			author = &profile
		}
	}

	related, err := e.GetRelatedContent(ctx, t, slug, relevance.DefaultMaxResults)
	if err != nil {
		return nil, err
	}
	mentions := make([]models.Summary, 0, len(related))
	for _, r := range related {
		mentions = append(mentions, r.Item)
	}

	g, err := e.assembler.Assemble(subject, author, mentions, subject.Category)
	if err != nil {
		return nil, fmt.Errorf("assemble graph for %s/%s: %w", t, slug, err)
	}
	return g, nil
}

// Entities returns the current dictionary entries for operator inspection.
func (e *Engine) Entities(ctx context.Context) []entity.Entry {
	return e.dict.Entries(ctx)
}

// Ready reports whether the engine serves complete results: the entity
// dictionary must have been built from the content store rather than the
// static fallback.
func (e *Engine) Ready(ctx context.Context) bool {
	return e.dict.Complete(ctx)
}

func (e *Engine) cachedRelated(key string) ([]models.RankedItem, bool) {
	if e.cacheTTL <= 0 {
		return nil, false
	}

	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	// Callers get a copy; the cached slice is shared across requests.
	results := make([]models.RankedItem, len(entry.results))
	copy(results, entry.results)
	return results, true
}

func (e *Engine) storeRelated(key string, results []models.RankedItem) {
	if e.cacheTTL <= 0 {
		return
	}

	// The cache owns its own copy; the computing caller's slice stays
	// private to it.
	cached := make([]models.RankedItem, len(results))
	copy(cached, results)

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	// Opportunistic eviction keeps the cache bounded without a sweeper
	// goroutine; expired entries are dropped whenever we write.
	if len(e.cache) >= 1024 {
		now := time.Now()
		for k, v := range e.cache {
			if now.After(v.expiresAt) {
				delete(e.cache, k)
			}
		}
		if len(e.cache) >= 1024 {
			logging.Debug().Int("entries", len(e.cache)).Msg("Related cache full, clearing")
			e.cache = make(map[string]cacheEntry)
		}
	}

	e.cache[key] = cacheEntry{
		results:   cached,
		expiresAt: time.Now().Add(e.cacheTTL),
	}
}

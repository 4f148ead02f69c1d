// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package relevance

import (
	"sort"
	"strings"

	"github.com/cpalmer418/interlink/internal/models"
)

// Category pool scores: an exact category-name match is a strong browsing
// recommendation, any other category is still offered as a broader aid.
const (
	categoryExactScore = 1.0
	categoryOtherScore = 0.5
)

// DefaultMaxResults is the hard cap on related-content results. The cap is
// enforced by the selector itself regardless of the caller-supplied limit to
// bound downstream rendering cost.
const DefaultMaxResults = 8

// Pools holds the candidate items per content type. A nil or empty pool
// yields zero candidates; the selector never errors on missing pools.
type Pools struct {
	Products   []models.ContentItem
	Articles   []models.ContentItem
	Categories []models.ContentItem
}

// SelectorConfig contains configuration for the related-content selector.
type SelectorConfig struct {
	// RelevanceFloor drops candidates scoring below it. Default: 0.3
	RelevanceFloor float64

	// MaxResults is the hard output cap. Default: 8
	MaxResults int
}

// Selector ranks candidate pools against a subject item.
// A Selector is immutable after construction and safe for concurrent use.
type Selector struct {
	scorer     *Scorer
	floor      float64
	maxResults int
}

// NewSelector creates a related-content selector on top of a scorer.
func NewSelector(scorer *Scorer, cfg SelectorConfig) *Selector {
	if scorer == nil {
		scorer = NewScorer(ScorerConfig{})
	}
	if cfg.RelevanceFloor == 0 {
		cfg.RelevanceFloor = 0.3
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = DefaultMaxResults
	}

	return &Selector{
		scorer:     scorer,
		floor:      cfg.RelevanceFloor,
		maxResults: cfg.MaxResults,
	}
}

// SelectRelated scores every pool candidate against the subject, drops the
// subject itself (slug equality) and anything below the relevance floor,
// sorts descending by score and truncates to limit.
//
// Ties preserve the original pool order (stable sort) so results are
// deterministic across identical inputs. The selector's hard cap applies
// regardless of the caller-supplied limit; limit <= 0 falls back to the cap.
func (s *Selector) SelectRelated(subject models.ContentItem, pools Pools, limit int) []models.RankedItem {
	if limit <= 0 || limit > s.maxResults {
		limit = s.maxResults
	}

	subjectTags := subject.Tags
	subjectCategory := subject.Category
	subjectCategoryNorm := subject.NormalizedCategory()

	ranked := make([]models.RankedItem, 0, len(pools.Products)+len(pools.Articles)+len(pools.Categories))

	scorePool := func(pool []models.ContentItem) {
		for _, candidate := range pool {
			if candidate.Slug == subject.Slug {
				continue
			}
			score := s.scorer.Score(subjectTags, subjectCategory, candidate.Tags, candidate.Category)
			if score < s.floor {
				continue
			}
			ranked = append(ranked, models.RankedItem{Item: candidate.Summarize(), Score: score})
		}
	}

	scorePool(pools.Products)
	scorePool(pools.Articles)

	// Categories are a broader browsing aid, not topically filtered: the
	// subject's own category ranks first, every other category half as high.
	for _, candidate := range pools.Categories {
		if candidate.Slug == subject.Slug {
			continue
		}
		// A category item's name lives in its title; some seeds also set the
		// category field on the item itself. Either counts as an exact match.
		score := categoryOtherScore
		if subjectCategoryNorm != "" &&
			(strings.ToLower(strings.TrimSpace(candidate.Title)) == subjectCategoryNorm ||
				candidate.NormalizedCategory() == subjectCategoryNorm) {
			score = categoryExactScore
		}
		if score < s.floor {
			continue
		}
		ranked = append(ranked, models.RankedItem{Item: candidate.Summarize(), Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

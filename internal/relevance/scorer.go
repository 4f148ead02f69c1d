// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package relevance implements content-to-content relevance scoring and
// related-content selection over directory items.
//
// The scorer computes a bounded similarity from descriptive signals only
// (tags and category), no interaction history:
//
//	score = tagWeight * |matching tag pairs| +
//	        categoryExactWeight  (categories equal, case-insensitive) |
//	        categoryPartialWeight (one category name contains the other)
//
// clamped to [0,1]. Tag matching uses case-insensitive substring containment
// in both directions: editorial tags are free text and near-duplicates
// ("AI Writing" vs "Writing AI") should still register as related. This is a
// recall-over-precision tradeoff; MinTagLength can exclude very short tags
// from matching when the false-positive rate matters more.
package relevance

import "strings"

// ScorerConfig contains configuration for the relevance scorer.
type ScorerConfig struct {
	// TagWeight is the increment per matching tag. Default: 0.3
	TagWeight float64

	// CategoryExactWeight is the increment for equal categories. Default: 0.4
	CategoryExactWeight float64

	// CategoryPartialWeight is the increment when one category contains
	// the other. Default: 0.2
	CategoryPartialWeight float64

	// MinTagLength excludes tags shorter than this from matching.
	// 0 disables the guard.
	MinTagLength int
}

// Scorer computes similarity scores between content items.
// A Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	tagWeight             float64
	categoryExactWeight   float64
	categoryPartialWeight float64
	minTagLength          int
}

// NewScorer creates a new relevance scorer.
func NewScorer(cfg ScorerConfig) *Scorer {
	if cfg.TagWeight == 0 {
		cfg.TagWeight = 0.3
	}
	if cfg.CategoryExactWeight == 0 {
		cfg.CategoryExactWeight = 0.4
	}
	if cfg.CategoryPartialWeight == 0 {
		cfg.CategoryPartialWeight = 0.2
	}

	return &Scorer{
		tagWeight:             cfg.TagWeight,
		categoryExactWeight:   cfg.CategoryExactWeight,
		categoryPartialWeight: cfg.CategoryPartialWeight,
		minTagLength:          cfg.MinTagLength,
	}
}

// Score computes a relevance score in [0,1] between a subject's descriptive
// signals and a candidate's. Inputs are normalized (lower-cased, trimmed)
// internally; callers may pass raw editorial text.
//
// Empty tag sets on either side contribute 0 from the tag term. Absent
// categories on either side skip the category term entirely.
func (s *Scorer) Score(subjectTags []string, subjectCategory string, candidateTags []string, candidateCategory string) float64 {
	score := 0.0

	subject := normalizeTags(subjectTags, s.minTagLength)
	candidate := normalizeTags(candidateTags, s.minTagLength)

	for _, st := range subject {
		if anyTagMatches(st, candidate) {
			score += s.tagWeight
		}
	}

	subjCat := strings.ToLower(strings.TrimSpace(subjectCategory))
	candCat := strings.ToLower(strings.TrimSpace(candidateCategory))
	if subjCat != "" && candCat != "" {
		switch {
		case subjCat == candCat:
			score += s.categoryExactWeight
		case strings.Contains(subjCat, candCat) || strings.Contains(candCat, subjCat):
			score += s.categoryPartialWeight
		}
	}

	return clamp01(score)
}

// anyTagMatches reports whether tag matches any candidate tag by substring
// containment in either direction. Tags are already normalized.
func anyTagMatches(tag string, candidates []string) bool {
	for _, ct := range candidates {
		if strings.Contains(ct, tag) || strings.Contains(tag, ct) {
			return true
		}
	}
	return false
}

// normalizeTags lower-cases and trims tags, dropping empties and tags
// shorter than minLen.
func normalizeTags(tags []string, minLen int) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || len(tag) < minLen {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// clamp01 bounds a score to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package entity

import (
	"sort"
	"strings"

	"github.com/cpalmer418/interlink/internal/models"
)

// SuggesterConfig contains configuration for the link suggestion analyzer.
type SuggesterConfig struct {
	// MaxSuggestions caps the result set. Default: 10
	MaxSuggestions int

	// TitleWeight is the relevance assigned to a title match. Default: 0.85
	TitleWeight float64

	// TagWeight is the relevance assigned to a tag match. Default: 0.6
	TagWeight float64
}

// Suggester proposes anchor/target/relevance triples for editorial or
// automated link insertion. Unlike the auto-linker it never mutates text:
// the caller reviews suggestions before applying them, which keeps a human
// between analysis and publication.
type Suggester struct {
	maxSuggestions int
	titleWeight    float64
	tagWeight      float64
}

// NewSuggester creates a link suggestion analyzer.
func NewSuggester(cfg SuggesterConfig) *Suggester {
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 10
	}
	if cfg.TitleWeight == 0 {
		cfg.TitleWeight = 0.85
	}
	if cfg.TagWeight == 0 {
		cfg.TagWeight = 0.6
	}
	return &Suggester{
		maxSuggestions: cfg.MaxSuggestions,
		titleWeight:    cfg.TitleWeight,
		tagWeight:      cfg.TagWeight,
	}
}

// SuggestLinks checks each candidate (excluding the subject) for a
// case-insensitive whole-word occurrence of its title or one of its tags in
// the body text. The occurrence is the prospective anchor, so a mid-word hit
// (the tag "ai" inside "against") is not a match: it could never be applied
// as a link. A title match outranks a tag match; when both occur only the
// title suggestion is kept for that candidate. Results are sorted descending
// by relevance (ties preserve candidate order) and capped.
func (s *Suggester) SuggestLinks(body string, candidates []models.ContentItem, subjectSlug string) []models.Suggestion {
	if body == "" || len(candidates) == 0 {
		return nil
	}

	lowerBody := strings.ToLower(body)
	suggestions := make([]models.Suggestion, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.Slug == subjectSlug || candidate.Slug == "" {
			continue
		}

		target := "/" + candidate.Type.URLSegment() + "/" + candidate.Slug

		title := strings.TrimSpace(candidate.Title)
		if title != "" && containsWholeWord(lowerBody, title) {
			suggestions = append(suggestions, models.Suggestion{
				AnchorText: title,
				TargetURL:  target,
				Relevance:  s.titleWeight,
			})
			continue
		}

		for _, tag := range candidate.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" || !containsWholeWord(lowerBody, tag) {
				continue
			}
			suggestions = append(suggestions, models.Suggestion{
				AnchorText: tag,
				TargetURL:  target,
				Relevance:  s.tagWeight,
			})
			break
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Relevance > suggestions[j].Relevance
	})

	if len(suggestions) > s.maxSuggestions {
		suggestions = suggestions[:s.maxSuggestions]
	}
	return suggestions
}

// containsWholeWord reports whether needle occurs in the already lower-cased
// haystack bounded by non-word runes on both sides.
func containsWholeWord(lowerHaystack, needle string) bool {
	needle = strings.ToLower(needle)
	for start := 0; start <= len(lowerHaystack)-len(needle); {
		i := strings.Index(lowerHaystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		if wholeWord(lowerHaystack, i, i+len(needle)) {
			return true
		}
		start = i + 1
	}
	return false
}

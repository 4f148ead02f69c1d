// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package models defines the value objects shared across the Interlink engine.
//
// All types here are immutable snapshots owned by the request that fetched
// them. The only shared mutable state in the system is the entity dictionary
// cache and the content store, both of which live elsewhere.
package models

import "strings"

// ContentType classifies a content item in the directory.
type ContentType string

const (
	// TypeProduct is a directory entry for a product or brand with its own page.
	TypeProduct ContentType = "product"
	// TypeArticle is an editorial post.
	TypeArticle ContentType = "article"
	// TypeCategory is a browsable grouping of products and articles.
	TypeCategory ContentType = "category"
)

// Valid reports whether the content type is one of the known values.
func (t ContentType) Valid() bool {
	switch t {
	case TypeProduct, TypeArticle, TypeCategory:
		return true
	default:
		return false
	}
}

// URLSegment returns the path segment used to build canonical URLs
// for items of this type.
func (t ContentType) URLSegment() string {
	switch t {
	case TypeProduct:
		return "tools"
	case TypeArticle:
		return "articles"
	case TypeCategory:
		return "categories"
	default:
		return string(t)
	}
}

// ContentItem is an immutable snapshot of one directory entry for the
// duration of a scoring or linking operation.
//
// Tags and Category are free editorial text; comparisons lower-case them
// once at the boundary (NormalizedTags, NormalizedCategory) rather than at
// each comparison site.
type ContentItem struct {
	// ID is the stable internal identifier.
	ID string `json:"id" validate:"required"`

	// Slug is the URL-safe identifier, unique per type.
	Slug string `json:"slug" validate:"required"`

	// Title is the display title.
	Title string `json:"title" validate:"required"`

	// Type is the content classification.
	Type ContentType `json:"type" validate:"required,oneof=product article category"`

	// Tags holds descriptive editorial tags. May be empty.
	Tags []string `json:"tags,omitempty"`

	// Category is the category display name. Empty when uncategorized.
	Category string `json:"category,omitempty"`

	// Body is the markdown body text. Empty for items without a page body.
	Body string `json:"body,omitempty"`

	// Published marks the item as publicly visible.
	Published bool `json:"published"`
}

// NormalizedTags returns the item's tags lower-cased and trimmed,
// with empty tags dropped.
func (c ContentItem) NormalizedTags() []string {
	if len(c.Tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// NormalizedCategory returns the category name lower-cased and trimmed.
func (c ContentItem) NormalizedCategory() string {
	return strings.ToLower(strings.TrimSpace(c.Category))
}

// Summary is the reduced view of an item carried in ranked results.
type Summary struct {
	Slug     string      `json:"slug"`
	Title    string      `json:"title"`
	Type     ContentType `json:"type"`
	Category string      `json:"category,omitempty"`
}

// Summarize reduces an item to its ranked-result view.
func (c ContentItem) Summarize() Summary {
	return Summary{
		Slug:     c.Slug,
		Title:    c.Title,
		Type:     c.Type,
		Category: c.Category,
	}
}

// RankedItem pairs an item summary with its relevance score.
// Results are ordered descending by score.
type RankedItem struct {
	Item  Summary `json:"item"`
	Score float64 `json:"score"`
}

// Suggestion is one proposed link insertion: anchor text found in a
// document, the target it should point at, and the match relevance.
type Suggestion struct {
	AnchorText string  `json:"anchor_text"`
	TargetURL  string  `json:"target_url"`
	Relevance  float64 `json:"relevance"`
}

// AuthorProfile describes an author for graph assembly.
type AuthorProfile struct {
	Name   string   `json:"name"`
	URL    string   `json:"url,omitempty"`
	Bio    string   `json:"bio,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package graph assembles the interconnected entity graph exported for each
// rendered page: publisher, subject content, author, related/mentioned
// entities and category, with stable identifiers and typed relationships.
//
// The graph is serialization-agnostic: nodes and edges carry no vocabulary
// field names. A downstream serializer owned by the rendering layer maps it
// to whatever structured-data format the page emits.
package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cpalmer418/interlink/internal/models"
)

// ErrNoRootIdentifier is returned when the subject lacks a derivable
// identifier. A graph without a root is meaningless, so assembly fails fast
// instead of emitting a partial record.
var ErrNoRootIdentifier = errors.New("graph: subject has no derivable identifier")

// NodeType classifies graph nodes.
type NodeType string

const (
	NodeOrganization NodeType = "organization"
	NodePerson       NodeType = "person"
	NodeContent      NodeType = "content"
	NodeCategory     NodeType = "category"
)

// Relationship types emitted by the assembler.
const (
	RelAuthoredBy = "authored-by"
	RelAbout      = "about"
	RelMentions   = "mentions"
)

// Relationship is a typed edge from the owning node to a target node.
type Relationship struct {
	Type         string `json:"type"`
	TargetNodeID string `json:"target_node_id"`
}

// Node is one typed record in the assembled graph. Nodes are constructed
// fresh per page render, never mutated after construction, and discarded
// after serialization.
type Node struct {
	ID            string            `json:"id"`
	Type          NodeType          `json:"type"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Relationships []Relationship    `json:"relationships,omitempty"`
}

// Graph is the assembled record set with its root node identifier.
type Graph struct {
	RootID string `json:"root_id"`
	Nodes  []Node `json:"nodes"`
}

// AssemblerConfig identifies the publisher whose pages the graphs describe.
type AssemblerConfig struct {
	// SiteName is the publisher display name.
	SiteName string

	// BaseURL is the canonical site origin without trailing slash.
	BaseURL string

	// LogoURL optionally points at the publisher logo.
	LogoURL string
}

// Assembler builds entity graphs. Immutable after construction and safe for
// concurrent use.
type Assembler struct {
	siteName string
	baseURL  string
	logoURL  string
}

// NewAssembler creates a graph assembler for the configured publisher.
func NewAssembler(cfg AssemblerConfig) *Assembler {
	return &Assembler{
		siteName: cfg.SiteName,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		logoURL:  cfg.LogoURL,
	}
}

// CanonicalURL derives the stable page URL for a content summary. Repeated
// calls for the same subject produce identical identifiers, which downstream
// structured-data caching depends on.
func (a *Assembler) CanonicalURL(item models.Summary) string {
	return a.baseURL + "/" + item.Type.URLSegment() + "/" + item.Slug
}

// Assemble builds the entity graph for one subject page.
//
// The organization and page nodes are always emitted. Author, category and
// related entities are optional: missing inputs omit the corresponding
// nodes and edges, never error. Relationship types are not deduplicated per
// node; a page may legitimately both be about and mention the same
// category, and both edges are preserved.
func (a *Assembler) Assemble(subject models.ContentItem, author *models.AuthorProfile, related []models.Summary, category string) (*Graph, error) {
	if subject.Slug == "" {
		return nil, fmt.Errorf("assembling graph for %q: %w", subject.Title, ErrNoRootIdentifier)
	}

	pageURL := a.CanonicalURL(subject.Summarize())
	pageID := pageURL + "#content"
	orgID := a.baseURL + "#organization"

	orgAttrs := map[string]string{
		"name": a.siteName,
		"url":  a.baseURL,
	}
	if a.logoURL != "" {
		orgAttrs["logo"] = a.logoURL
	}

	org := Node{
		ID:         orgID,
		Type:       NodeOrganization,
		Attributes: orgAttrs,
	}

	pageAttrs := map[string]string{
		"title": subject.Title,
		"url":   pageURL,
	}
	if subject.Category != "" {
		pageAttrs["category"] = subject.Category
	}

	page := Node{
		ID:         pageID,
		Type:       NodeContent,
		Attributes: pageAttrs,
	}

	nodes := []Node{org}

	if author != nil && author.Name != "" {
		personID := a.baseURL + "/authors/" + slugify(author.Name) + "#person"
		personAttrs := map[string]string{"name": author.Name}
		if author.URL != "" {
			personAttrs["url"] = author.URL
		}
		nodes = append(nodes, Node{
			ID:         personID,
			Type:       NodePerson,
			Attributes: personAttrs,
		})
		page.Relationships = append(page.Relationships, Relationship{
			Type:         RelAuthoredBy,
			TargetNodeID: personID,
		})
	}

	// One entity, one node: when the category also appears among the
	// related entities, its canonical slug names the node and both the
	// about and mentions edges target it.
	var categoryID string
	if category != "" {
		categoryID = a.baseURL + "/categories/" + slugify(category) + "#category"
		categoryAttrs := map[string]string{"name": category}
		for _, rel := range related {
			if rel.Slug != "" && rel.Type == models.TypeCategory && strings.EqualFold(rel.Title, category) {
				categoryID = a.CanonicalURL(rel) + "#category"
				categoryAttrs["url"] = a.CanonicalURL(rel)
				break
			}
		}
		nodes = append(nodes, Node{
			ID:         categoryID,
			Type:       NodeCategory,
			Attributes: categoryAttrs,
		})
		page.Relationships = append(page.Relationships, Relationship{
			Type:         RelAbout,
			TargetNodeID: categoryID,
		})
	}

	for _, rel := range related {
		if rel.Slug == "" {
			continue
		}
		if category != "" && rel.Type == models.TypeCategory && strings.EqualFold(rel.Title, category) {
			page.Relationships = append(page.Relationships, Relationship{
				Type:         RelMentions,
				TargetNodeID: categoryID,
			})
			continue
		}
		relID := a.CanonicalURL(rel) + "#content"
		nodes = append(nodes, Node{
			ID:   relID,
			Type: NodeContent,
			Attributes: map[string]string{
				"title": rel.Title,
				"url":   a.CanonicalURL(rel),
			},
		})
		page.Relationships = append(page.Relationships, Relationship{
			Type:         RelMentions,
			TargetNodeID: relID,
		})
	}

	nodes = append(nodes, page)

	return &Graph{RootID: pageID, Nodes: nodes}, nil
}

// slugify lower-cases a display name and collapses non-alphanumeric runs
// into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

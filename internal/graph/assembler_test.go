// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package graph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cpalmer418/interlink/internal/models"
)

func testAssembler() *Assembler {
	return NewAssembler(AssemblerConfig{
		SiteName: "Example Directory",
		BaseURL:  "https://example.com",
		LogoURL:  "https://example.com/logo.png",
	})
}

func subjectItem() models.ContentItem {
	return models.ContentItem{
		Slug:      "jasper",
		Title:     "Jasper",
		Type:      models.TypeProduct,
		Category:  "Writing Tools",
		Published: true,
	}
}

func TestAssembleMinimalGraph(t *testing.T) {
	a := testAssembler()

	g, err := a.Assemble(subjectItem(), nil, nil, "")
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	// Exactly the organization and the page, no edges.
	if len(g.Nodes) != 2 {
		t.Fatalf("minimal graph has %d nodes, want 2", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if len(n.Relationships) != 0 {
			t.Errorf("minimal graph node %q has %d edges, want 0", n.ID, len(n.Relationships))
		}
	}

	if g.RootID != "https://example.com/tools/jasper#content" {
		t.Errorf("RootID = %q", g.RootID)
	}
	if g.Nodes[0].Type != NodeOrganization {
		t.Errorf("first node type = %q, want organization", g.Nodes[0].Type)
	}
	if g.Nodes[0].ID != "https://example.com#organization" {
		t.Errorf("organization ID = %q", g.Nodes[0].ID)
	}
}

func TestAssembleFullGraph(t *testing.T) {
	a := testAssembler()

	author := &models.AuthorProfile{
		Name: "Dana Reyes",
		URL:  "https://example.com/about/dana",
	}
	related := []models.Summary{
		{Slug: "copy-ai", Title: "Copy AI", Type: models.TypeProduct},
		{Slug: "ai-writing-guide", Title: "AI Writing Guide", Type: models.TypeArticle},
	}

	g, err := a.Assemble(subjectItem(), author, related, "Writing Tools")
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	// org + person + category + 2 related + page
	if len(g.Nodes) != 6 {
		t.Fatalf("full graph has %d nodes, want 6", len(g.Nodes))
	}

	var page *Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == g.RootID {
			page = &g.Nodes[i]
		}
	}
	if page == nil {
		t.Fatal("root node missing from graph")
	}

	byType := map[string][]string{}
	for _, rel := range page.Relationships {
		byType[rel.Type] = append(byType[rel.Type], rel.TargetNodeID)
	}

	if got := byType[RelAuthoredBy]; len(got) != 1 ||
		got[0] != "https://example.com/authors/dana-reyes#person" {
		t.Errorf("authored-by edges = %v", got)
	}
	if got := byType[RelAbout]; len(got) != 1 ||
		got[0] != "https://example.com/categories/writing-tools#category" {
		t.Errorf("about edges = %v", got)
	}
	wantMentions := []string{
		"https://example.com/tools/copy-ai#content",
		"https://example.com/articles/ai-writing-guide#content",
	}
	if !reflect.DeepEqual(byType[RelMentions], wantMentions) {
		t.Errorf("mentions edges = %v, want %v", byType[RelMentions], wantMentions)
	}

	// All edges hang off the page node.
	for _, n := range g.Nodes {
		if n.ID != g.RootID && len(n.Relationships) != 0 {
			t.Errorf("node %q carries edges, want edges only on the page", n.ID)
		}
	}
}

func TestAssembleCategoryMentionSharesNode(t *testing.T) {
	a := testAssembler()

	// The category appears both as the subject's category and as a related
	// mention; one node carries both edges.
	related := []models.Summary{
		{Slug: "writing-tools", Title: "Writing Tools", Type: models.TypeCategory},
		{Slug: "copy-ai", Title: "Copy AI", Type: models.TypeProduct},
	}

	g, err := a.Assemble(subjectItem(), nil, related, "Writing Tools")
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	// org + category + copy-ai + page
	if len(g.Nodes) != 4 {
		t.Fatalf("graph has %d nodes, want 4 (category node not duplicated)", len(g.Nodes))
	}

	categoryID := "https://example.com/categories/writing-tools#category"
	var categoryNodes int
	for _, n := range g.Nodes {
		if n.Type == NodeCategory {
			categoryNodes++
			if n.ID != categoryID {
				t.Errorf("category node ID = %q, want %q", n.ID, categoryID)
			}
			if n.Attributes["url"] != "https://example.com/categories/writing-tools" {
				t.Errorf("category node url = %q", n.Attributes["url"])
			}
		}
	}
	if categoryNodes != 1 {
		t.Errorf("graph has %d category nodes, want 1", categoryNodes)
	}

	var page *Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == g.RootID {
			page = &g.Nodes[i]
		}
	}
	if page == nil {
		t.Fatal("root node missing from graph")
	}

	// Both edges survive, targeting the same node.
	var about, mentions int
	for _, rel := range page.Relationships {
		if rel.TargetNodeID != categoryID {
			continue
		}
		switch rel.Type {
		case RelAbout:
			about++
		case RelMentions:
			mentions++
		}
	}
	if about != 1 || mentions != 1 {
		t.Errorf("category edges = %d about, %d mentions, want 1 each", about, mentions)
	}
}

func TestAssembleMissingRootIdentifier(t *testing.T) {
	a := testAssembler()

	subject := subjectItem()
	subject.Slug = ""

	_, err := a.Assemble(subject, nil, nil, "")
	if !errors.Is(err, ErrNoRootIdentifier) {
		t.Errorf("Assemble() error = %v, want ErrNoRootIdentifier", err)
	}
}

func TestAssembleSkipsSluglessRelated(t *testing.T) {
	a := testAssembler()

	related := []models.Summary{
		{Slug: "", Title: "Nameless", Type: models.TypeProduct},
		{Slug: "canva", Title: "Canva", Type: models.TypeProduct},
	}

	g, err := a.Assemble(subjectItem(), nil, related, "")
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	// org + canva + page
	if len(g.Nodes) != 3 {
		t.Errorf("graph has %d nodes, want 3 (slugless related skipped)", len(g.Nodes))
	}
}

func TestAssembleDeterminism(t *testing.T) {
	a := testAssembler()
	author := &models.AuthorProfile{Name: "Dana Reyes"}
	related := []models.Summary{{Slug: "canva", Title: "Canva", Type: models.TypeProduct}}

	first, err := a.Assemble(subjectItem(), author, related, "Design")
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	for i := 0; i < 20; i++ {
		got, err := a.Assemble(subjectItem(), author, related, "Design")
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("Assemble() varied across identical inputs")
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dana Reyes", "dana-reyes"},
		{"Writing Tools", "writing-tools"},
		{"AI & ML", "ai-ml"},
		{"  spaced  out  ", "spaced-out"},
		{"Already-Hyphenated", "already-hyphenated"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

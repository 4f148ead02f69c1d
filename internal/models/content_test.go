// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package models

import (
	"reflect"
	"testing"
)

func TestContentTypeValid(t *testing.T) {
	tests := []struct {
		t    ContentType
		want bool
	}{
		{TypeProduct, true},
		{TypeArticle, true},
		{TypeCategory, true},
		{"video", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.t.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestContentTypeURLSegment(t *testing.T) {
	tests := []struct {
		t    ContentType
		want string
	}{
		{TypeProduct, "tools"},
		{TypeArticle, "articles"},
		{TypeCategory, "categories"},
	}
	for _, tt := range tests {
		if got := tt.t.URLSegment(); got != tt.want {
			t.Errorf("URLSegment(%q) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestNormalizedTags(t *testing.T) {
	item := ContentItem{Tags: []string{" AI ", "Writing", "", "  "}}
	got := item.NormalizedTags()
	want := []string{"ai", "writing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizedTags() = %v, want %v", got, want)
	}

	if got := (ContentItem{}).NormalizedTags(); got != nil {
		t.Errorf("NormalizedTags() on empty = %v, want nil", got)
	}
}

func TestSummarize(t *testing.T) {
	item := ContentItem{
		ID:       "1",
		Slug:     "jasper",
		Title:    "Jasper",
		Type:     TypeProduct,
		Category: "Writing Tools",
		Body:     "long body omitted from summaries",
	}
	got := item.Summarize()
	if got.Slug != "jasper" || got.Title != "Jasper" || got.Type != TypeProduct {
		t.Errorf("Summarize() = %+v", got)
	}
}

// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package relevance

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScorerScore(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	tests := []struct {
		name              string
		subjectTags       []string
		subjectCategory   string
		candidateTags     []string
		candidateCategory string
		want              float64
	}{
		{
			name:              "one shared tag plus exact category",
			subjectTags:       []string{"writing", "ai"},
			subjectCategory:   "Writing Tools",
			candidateTags:     []string{"ai", "marketing"},
			candidateCategory: "Writing Tools",
			want:              0.7,
		},
		{
			name:              "containment matches count per subject tag",
			subjectTags:       []string{"writing", "ai"},
			subjectCategory:   "Writing Tools",
			candidateTags:     []string{"ai", "copywriting"},
			candidateCategory: "Writing Tools",
			// "copywriting" contains "writing", so both subject tags match.
			want: 1.0,
		},
		{
			name:              "no overlap at all",
			subjectTags:       []string{"cooking"},
			subjectCategory:   "Recipes",
			candidateTags:     []string{"finance"},
			candidateCategory: "Investing",
			want:              0,
		},
		{
			name:              "exact category only",
			subjectTags:       nil,
			subjectCategory:   "Video Tools",
			candidateTags:     nil,
			candidateCategory: "video tools",
			want:              0.4,
		},
		{
			name:              "partial category containment",
			subjectTags:       nil,
			subjectCategory:   "AI Writing",
			candidateTags:     nil,
			candidateCategory: "Writing",
			want:              0.2,
		},
		{
			name:              "missing candidate category skips category term",
			subjectTags:       []string{"seo"},
			subjectCategory:   "Marketing",
			candidateTags:     []string{"seo"},
			candidateCategory: "",
			want:              0.3,
		},
		{
			name:              "tags match by substring containment",
			subjectTags:       []string{"image generation"},
			subjectCategory:   "",
			candidateTags:     []string{"image"},
			candidateCategory: "",
			want:              0.3,
		},
		{
			name:              "case and whitespace are normalized",
			subjectTags:       []string{"  SEO "},
			subjectCategory:   " marketing ",
			candidateTags:     []string{"seo"},
			candidateCategory: "MARKETING",
			want:              0.7,
		},
		{
			name:              "score clamps at one",
			subjectTags:       []string{"a1", "a2", "a3", "a4"},
			subjectCategory:   "Tools",
			candidateTags:     []string{"a1", "a2", "a3", "a4"},
			candidateCategory: "Tools",
			want:              1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.subjectTags, tt.subjectCategory, tt.candidateTags, tt.candidateCategory)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score() = %f, want %f", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Score() = %f, outside [0,1]", got)
			}
		})
	}
}

func TestScorerDeterminism(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	subjectTags := []string{"ai", "video", "editing"}
	candidateTags := []string{"video editing", "ai"}

	first := scorer.Score(subjectTags, "Video Tools", candidateTags, "Video")
	for i := 0; i < 100; i++ {
		got := scorer.Score(subjectTags, "Video Tools", candidateTags, "Video")
		if got != first {
			t.Fatalf("Score() varied across identical inputs: %f vs %f", got, first)
		}
	}
}

func TestScorerMinTagLength(t *testing.T) {
	scorer := NewScorer(ScorerConfig{MinTagLength: 3})

	// "ai" is below the minimum length and must not match anything.
	got := scorer.Score([]string{"ai"}, "", []string{"ai"}, "")
	if got != 0 {
		t.Errorf("Score() with short tags = %f, want 0", got)
	}

	got = scorer.Score([]string{"seo"}, "", []string{"seo"}, "")
	if !almostEqual(got, 0.3) {
		t.Errorf("Score() with qualifying tag = %f, want 0.3", got)
	}
}

func TestScorerCustomWeights(t *testing.T) {
	scorer := NewScorer(ScorerConfig{
		TagWeight:           0.1,
		CategoryExactWeight: 0.5,
	})

	got := scorer.Score([]string{"x"}, "Cat", []string{"x"}, "Cat")
	if !almostEqual(got, 0.6) {
		t.Errorf("Score() = %f, want 0.6", got)
	}
}

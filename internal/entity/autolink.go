// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package entity

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cpalmer418/interlink/internal/metrics"
)

// Protected markup spans. Matches inside any of these must never be
// rewritten: existing markdown links (both label and target), inline code
// spans, HTML-like tags (including their attributes) and existing emphasis.
// Go's RE2 has no lookaround, so exclusion is an explicit range check
// against these spans rather than lookbehind/lookahead assertions.
// Markdown soft-wraps link labels, code spans and emphasis across line
// breaks, so the character classes admit newlines; over-protecting a span
// skips a rewrite, under-protecting one corrupts existing markup.
var (
	markdownLinkPattern = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	inlineCodePattern   = regexp.MustCompile("`[^`]*`")
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	emphasisPattern     = regexp.MustCompile(`\*\*[^*]+\*\*`)
)

// LinkerConfig contains configuration for the auto-linker.
type LinkerConfig struct {
	// MaxPerEntity caps rewritten occurrences per entity per document.
	// Once a reader has seen a term linked this many times, further links
	// add no navigational value and risk looking spammy. Default: 3
	MaxPerEntity int

	// LinkPathPrefix is the URL path prefix for entity links.
	// Default: /tools/
	LinkPathPrefix string
}

// Linker rewrites entity mentions in markdown body text into links.
// A Linker is immutable after construction and safe for concurrent use.
type Linker struct {
	maxPerEntity int
	pathPrefix   string
}

// NewLinker creates an auto-linker.
func NewLinker(cfg LinkerConfig) *Linker {
	if cfg.MaxPerEntity <= 0 {
		cfg.MaxPerEntity = 3
	}
	if cfg.LinkPathPrefix == "" {
		cfg.LinkPathPrefix = "/tools/"
	}
	return &Linker{
		maxPerEntity: cfg.MaxPerEntity,
		pathPrefix:   cfg.LinkPathPrefix,
	}
}

// AutoLink scans body text for dictionary entries and rewrites qualifying
// occurrences: entries with a canonical slug become markdown links, slugless
// entries become emphasized text. The input is never mutated; the rewritten
// text is returned.
//
// Entries are processed in descending display-name length order (the
// dictionary guarantees the order) so a short name that is a substring of a
// longer one cannot fragment it. Matches are whole-word and
// case-insensitive; occurrences inside existing links, code spans, HTML tags
// or emphasis pass through unchanged, which also makes AutoLink idempotent:
// a second pass over its own output rewrites nothing.
func (l *Linker) AutoLink(ctx context.Context, body string, dict *Dictionary) string {
	if body == "" || dict == nil {
		return body
	}

	links, emphases := 0, 0
	for _, entry := range dict.Entries(ctx) {
		var rewritten int
		body, rewritten = l.linkEntry(body, entry)
		if entry.CanonicalSlug != "" {
			links += rewritten
		} else {
			emphases += rewritten
		}
	}

	metrics.RecordEntityRewrite("link", links)
	metrics.RecordEntityRewrite("emphasis", emphases)
	return body
}

// linkEntry rewrites up to maxPerEntity occurrences of one entry and
// returns the new text and the rewrite count. Protected ranges are
// recomputed per entry because each rewrite introduces new protected
// markup.
func (l *Linker) linkEntry(body string, entry Entry) (string, int) {
	name := strings.TrimSpace(entry.DisplayName)
	if name == "" {
		return body, 0
	}

	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
	if err != nil {
		// QuoteMeta makes this unreachable for any display name; keep the
		// occurrence untouched rather than failing the document.
		return body, 0
	}

	// Occurrences already in rewritten form count against the cap, so a
	// second pass over previously linked text rewrites nothing new.
	budget := l.maxPerEntity - l.existingRewrites(body, entry)
	if budget <= 0 {
		return body, 0
	}

	protected := protectedRanges(body)
	matches := pattern.FindAllStringIndex(body, -1)
	if matches == nil {
		return body, 0
	}

	var b strings.Builder
	b.Grow(len(body) + 64)

	last := 0
	count := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if count >= budget {
			break
		}
		if !wholeWord(body, start, end) || overlapsAny(protected, start, end) {
			continue
		}

		b.WriteString(body[last:start])
		b.WriteString(l.render(entry, body[start:end]))
		last = end
		count++
	}

	if count == 0 {
		return body, 0
	}
	b.WriteString(body[last:])
	return b.String(), count
}

// existingRewrites counts occurrences of the entry already in rewritten
// form: markdown links targeting the entry's canonical path, or emphasized
// name text for slugless entries.
func (l *Linker) existingRewrites(body string, entry Entry) int {
	name := regexp.QuoteMeta(strings.TrimSpace(entry.DisplayName))

	var form string
	if entry.CanonicalSlug != "" {
		form = `(?i)\[[^\]]*\]\(` + regexp.QuoteMeta(l.pathPrefix+entry.CanonicalSlug) + `\)`
	} else {
		form = `(?i)\*\*` + name + `\*\*`
	}

	pattern, err := regexp.Compile(form)
	if err != nil {
		return 0
	}
	return len(pattern.FindAllStringIndex(body, -1))
}

// render produces the replacement markup for one matched occurrence,
// preserving the casing found in the document.
func (l *Linker) render(entry Entry, matched string) string {
	if entry.CanonicalSlug != "" {
		return fmt.Sprintf("[%s](%s%s)", matched, l.pathPrefix, entry.CanonicalSlug)
	}
	// No internal page: visual highlight without navigation.
	return fmt.Sprintf("**%s**", matched)
}

// span is a half-open byte range [start, end) of protected text.
type span struct {
	start, end int
}

// protectedRanges collects the byte ranges of markup that must not be
// rewritten.
func protectedRanges(body string) []span {
	var spans []span
	for _, pattern := range []*regexp.Regexp{
		markdownLinkPattern,
		inlineCodePattern,
		htmlTagPattern,
		emphasisPattern,
	} {
		for _, m := range pattern.FindAllStringIndex(body, -1) {
			spans = append(spans, span{start: m[0], end: m[1]})
		}
	}
	return spans
}

// overlapsAny reports whether [start, end) intersects any protected span.
func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// wholeWord reports whether the match at [start, end) is bounded by
// non-word runes on both sides.
func wholeWord(body string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(body[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(body) {
		r, _ := utf8.DecodeRuneInString(body[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// isWordRune mirrors the \w character class.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

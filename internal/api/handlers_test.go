// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/cpalmer418/interlink/internal/authors"
	"github.com/cpalmer418/interlink/internal/engine"
	"github.com/cpalmer418/interlink/internal/entity"
	"github.com/cpalmer418/interlink/internal/graph"
	"github.com/cpalmer418/interlink/internal/models"
	"github.com/cpalmer418/interlink/internal/relevance"
	"github.com/cpalmer418/interlink/internal/store"
)

type fakeRepo struct {
	items   []models.ContentItem
	findErr error
}

func (f *fakeRepo) FindBySlug(ctx context.Context, t models.ContentType, slug string) (models.ContentItem, error) {
	for _, item := range f.items {
		if item.Type == t && item.Slug == slug {
			return item, nil
		}
	}
	return models.ContentItem{}, store.ErrItemNotFound
}

func (f *fakeRepo) FindPublished(ctx context.Context, t models.ContentType, excludeSlug string) ([]models.ContentItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.ContentItem
	for _, item := range f.items {
		if item.Type != t || !item.Published || item.Slug == excludeSlug {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func testServer(t *testing.T) http.Handler {
	t.Helper()

	repo := &fakeRepo{items: []models.ContentItem{
		{ID: "1", Slug: "jasper", Title: "Jasper", Type: models.TypeProduct,
			Tags: []string{"ai", "writing"}, Category: "Writing Tools", Published: true},
		{ID: "2", Slug: "copy-ai", Title: "Copy AI", Type: models.TypeProduct,
			Tags: []string{"ai", "writing"}, Category: "Writing Tools", Published: true},
	}}
	return testServerWith(t, repo)
}

func testServerWith(t *testing.T, repo *fakeRepo) http.Handler {
	t.Helper()

	dict := entity.NewDictionary(repo, entity.DictionaryConfig{})
	directory := authors.NewDirectory([]models.AuthorProfile{{Name: "Editorial Team"}}, "")
	assembler := graph.NewAssembler(graph.AssemblerConfig{
		SiteName: "Example Directory",
		BaseURL:  "https://example.com",
	})

	eng, err := engine.New(engine.Config{},
		repo,
		directory,
		relevance.NewSelector(nil, relevance.SelectorConfig{}),
		dict,
		entity.NewLinker(entity.LinkerConfig{}),
		entity.NewSuggester(entity.SuggesterConfig{}),
		assembler,
	)
	if err != nil {
		t.Fatalf("engine.New() error: %v", err)
	}

	router := NewRouter(NewHandler(eng), NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitDisabled: true,
	}))
	return router.Setup()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp APIResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, resp
}

func TestRelatedEndpoint(t *testing.T) {
	h := testServer(t)

	rec, resp := doRequest(t, h, http.MethodGet, "/api/v1/content/product/jasper/related", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if !resp.Success {
		t.Error("response success = false")
	}
	if resp.Meta == nil || resp.Meta.Count == 0 {
		t.Error("response meta missing item count")
	}
}

func TestRelatedEndpointErrors(t *testing.T) {
	h := testServer(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantErr  string
	}{
		{"unknown slug", "/api/v1/content/product/missing/related", http.StatusNotFound, ErrCodeNotFound},
		{"unknown type", "/api/v1/content/video/jasper/related", http.StatusBadRequest, ErrCodeBadRequest},
		{"bad limit", "/api/v1/content/product/jasper/related?limit=abc", http.StatusBadRequest, ErrCodeBadRequest},
		{"negative limit", "/api/v1/content/product/jasper/related?limit=-1", http.StatusBadRequest, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, h, http.MethodGet, tt.path, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestRewriteEndpoint(t *testing.T) {
	h := testServer(t)

	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/rewrite",
		`{"body":"Jasper is fast."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	var out RewriteResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	want := "[Jasper](/tools/jasper) is fast."
	if out.Body != want {
		t.Errorf("rewritten body = %q, want %q", out.Body, want)
	}
}

func TestRewriteEndpointValidation(t *testing.T) {
	h := testServer(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing body field", `{}`, ErrCodeValidationFailed},
		{"malformed json", `{`, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/rewrite", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestSuggestEndpoint(t *testing.T) {
	h := testServer(t)

	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/suggest",
		`{"body":"Compare Copy AI to alternatives.","subject_slug":"jasper"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if resp.Meta == nil || resp.Meta.Count != 1 {
		t.Errorf("meta = %+v, want one suggestion", resp.Meta)
	}
}

func TestGraphEndpoint(t *testing.T) {
	h := testServer(t)

	rec, resp := doRequest(t, h, http.MethodGet, "/api/v1/content/product/jasper/graph", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("unmarshal graph: %v", err)
	}
	if g.RootID == "" || len(g.Nodes) < 2 {
		t.Errorf("graph = root %q, %d nodes; want root and at least 2 nodes", g.RootID, len(g.Nodes))
	}
}

func TestEntitiesEndpoint(t *testing.T) {
	h := testServer(t)

	rec, resp := doRequest(t, h, http.MethodGet, "/api/v1/entities", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Meta == nil || resp.Meta.Count != 2 {
		t.Errorf("meta = %+v, want 2 dictionary entries", resp.Meta)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := testServer(t)

	for _, path := range []string{
		"/api/v1/health/",
		"/api/v1/health/live",
		"/api/v1/health/ready",
	} {
		rec, resp := doRequest(t, h, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, rec.Code)
		}
		if !resp.Success {
			t.Errorf("%s response success = false", path)
		}
	}
}

func TestHealthReadyDegraded(t *testing.T) {
	// A failing store degrades the dictionary to its static fallback;
	// readiness must report 503 while liveness stays up.
	h := testServerWith(t, &fakeRepo{findErr: errors.New("store down")})

	rec, resp := doRequest(t, h, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready status = %d, want 503", rec.Code)
	}
	if resp.Success {
		t.Error("degraded readiness reported success")
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := testServer(t)

	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/entities", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing from response")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") &&
		!strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing expected series")
	}
}

// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/cpalmer418/interlink/internal/engine"
	"github.com/cpalmer418/interlink/internal/logging"
	"github.com/cpalmer418/interlink/internal/models"
)

// maxBodyBytes caps rewrite and suggest request bodies. Editorial documents
// are prose; anything past this is a mistake or abuse.
const maxBodyBytes = 1 << 20 // 1 MiB

// Handler handles all API endpoints.
type Handler struct {
	engine    *engine.Engine
	validate  *validator.Validate
	startTime time.Time
}

// NewHandler creates the API handler set on top of the engine facade.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{
		engine:    eng,
		validate:  validator.New(),
		startTime: time.Now(),
	}
}

// subjectParams extracts and validates the {type}/{slug} route parameters.
func subjectParams(r *http.Request) (models.ContentType, string, bool) {
	t := models.ContentType(chi.URLParam(r, "type"))
	slug := chi.URLParam(r, "slug")
	if !t.Valid() || slug == "" {
		return "", "", false
	}
	return t, slug, true
}

// Related handles GET /api/v1/content/{type}/{slug}/related.
// Returns ranked related items for one subject page.
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	t, slug, ok := subjectParams(r)
	if !ok {
		rw.BadRequest("Invalid content type or slug")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			rw.BadRequest("Invalid limit parameter")
			return
		}
		limit = parsed
	}

	results, err := h.engine.GetRelatedContent(r.Context(), t, slug, limit)
	if err != nil {
		if errors.Is(err, engine.ErrContentNotFound) {
			rw.NotFound("Content not found")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).
			Str("type", string(t)).
			Str("slug", slug).
			Msg("Related content selection failed")
		rw.StoreError(err)
		return
	}

	rw.SuccessWithCount(results, len(results))
}

// RewriteRequest is the rewrite endpoint payload.
type RewriteRequest struct {
	Body string `json:"body" validate:"required"`
}

// RewriteResponse carries the rewritten document.
type RewriteResponse struct {
	Body string `json:"body"`
}

// Rewrite handles POST /api/v1/rewrite.
// Rewrites entity mentions in the submitted markdown into links or emphasis.
func (h *Handler) Rewrite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RewriteRequest
	if !h.decode(rw, r, &req) {
		return
	}

	rewritten := h.engine.RewriteWithEntityLinks(r.Context(), req.Body)
	rw.Success(RewriteResponse{Body: rewritten})
}

// SuggestRequest is the suggestion endpoint payload. SubjectSlug excludes
// the document's own page from the suggestions.
type SuggestRequest struct {
	Body        string `json:"body" validate:"required"`
	SubjectSlug string `json:"subject_slug"`
}

// Suggest handles POST /api/v1/suggest.
// Returns ranked internal-link opportunities for the submitted document.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SuggestRequest
	if !h.decode(rw, r, &req) {
		return
	}

	suggestions, err := h.engine.SuggestLinks(r.Context(), req.Body, req.SubjectSlug)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Link suggestion failed")
		rw.StoreError(err)
		return
	}

	rw.SuccessWithCount(suggestions, len(suggestions))
}

// Graph handles GET /api/v1/content/{type}/{slug}/graph.
// Returns the assembled entity graph for one subject page.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	t, slug, ok := subjectParams(r)
	if !ok {
		rw.BadRequest("Invalid content type or slug")
		return
	}

	g, err := h.engine.BuildEntityGraph(r.Context(), t, slug)
	if err != nil {
		if errors.Is(err, engine.ErrContentNotFound) {
			rw.NotFound("Content not found")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).
			Str("type", string(t)).
			Str("slug", slug).
			Msg("Entity graph assembly failed")
		rw.StoreError(err)
		return
	}

	rw.Success(g)
}

// Entities handles GET /api/v1/entities.
// Lists the current dictionary entries for operator inspection.
func (h *Handler) Entities(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	entries := h.engine.Entities(r.Context())
	rw.SuccessWithCount(entries, len(entries))
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Entities      int    `json:"entities"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	rw.Success(HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Entities:      len(h.engine.Entities(r.Context())),
	})
}

// HealthLive handles GET /api/v1/health/live. It reports process liveness
// only; no downstream checks.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires the
// entity dictionary to have been built from the content store; a dictionary
// degraded to its static fallback reports 503 so orchestrators hold traffic
// until the store recovers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if !h.engine.Ready(r.Context()) {
		rw.ServiceUnavailable("Entity dictionary degraded to static fallback")
		return
	}

	rw.Success(HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Entities:      len(h.engine.Entities(r.Context())),
	})
}

// decode parses and validates a JSON request body, writing the error
// response itself on failure.
func (h *Handler) decode(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				details = append(details, ve.Field()+": "+ve.Tag())
			}
			rw.ValidationError("Request validation failed", details)
		} else {
			rw.BadRequest("Request validation failed")
		}
		return false
	}
	return true
}

// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/service"
)

// Posts serves the post endpoints. The cache may be nil, which disables
// response caching entirely.
type Posts struct {
	svc   *service.PostService
	cache *cache.PostCache
}

// NewPosts returns a new post handler group.
func NewPosts(svc *service.PostService, c *cache.PostCache) *Posts {
	return &Posts{svc: svc, cache: c}
}

// List handles GET /posts with optional status, author, limit, and offset
// query parameters.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := h.svc.GetAll(params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Published handles GET /posts/published. Pages are served from the cache
// when possible.
func (h *Posts) Published(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	key := cache.ListKey(params.Limit, params.Offset)
	if body, ok := h.cache.Get(r.Context(), key); ok {
		writeRaw(w, http.StatusOK, body)
		return
	}

	items, err := h.svc.GetPublished(params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	body, err := json.Marshal(items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.Set(r.Context(), key, body)
	writeRaw(w, http.StatusOK, body)
}

// Count handles GET /posts/count with optional status and author filters.
func (h *Posts) Count(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	count, err := h.svc.GetCount(params.Status, params.Author)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Get handles GET /posts/{id}.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid post ID")
		return
	}

	p, err := h.svc.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetBySlug handles GET /posts/slug/{slug}. Published posts are served from
// the cache when possible; drafts are never cached.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	key := cache.SlugKey(slug)
	if body, ok := h.cache.Get(r.Context(), key); ok {
		writeRaw(w, http.StatusOK, body)
		return
	}

	p, err := h.svc.GetBySlug(slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if p.IsPublished() {
		if body, err := json.Marshal(p); err == nil {
			h.cache.Set(r.Context(), key, body)
			writeRaw(w, http.StatusOK, body)
			return
		}
	}
	writeJSON(w, http.StatusOK, p)
}

// ByAuthor handles GET /posts/author/{author}.
func (h *Posts) ByAuthor(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := h.svc.GetByAuthor(chi.URLParam(r, "author"), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ByCategory handles GET /posts/category/{id}.
func (h *Posts) ByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid category ID")
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := h.svc.GetByCategory(id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ByCategorySlug handles GET /posts/category/slug/{slug}.
func (h *Posts) ByCategorySlug(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := h.svc.GetByCategorySlug(chi.URLParam(r, "slug"), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /posts.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	p, err := h.svc.Create(req.Title, req.Content, req.Author, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.InvalidateLists(r.Context())
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /posts/{id}. The slug may change, so both the old and
// new cached entries are dropped.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid post ID")
		return
	}

	var req updatePostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	existing, err := h.svc.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	p, err := h.svc.Update(id, req.Title, req.Status, req.Content, req.Author)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.InvalidatePost(r.Context(), existing.Slug)
	h.cache.InvalidatePost(r.Context(), p.Slug)
	h.cache.InvalidateLists(r.Context())
	writeJSON(w, http.StatusOK, p)
}

// UpdateStatus handles PATCH /posts/{id}/status.
func (h *Posts) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid post ID")
		return
	}

	var req updateStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	p, err := h.svc.UpdateStatus(id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.InvalidatePost(r.Context(), p.Slug)
	h.cache.InvalidateLists(r.Context())
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /posts/{id}.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid post ID")
		return
	}

	existing, err := h.svc.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	h.cache.InvalidatePost(r.Context(), existing.Slug)
	h.cache.InvalidateLists(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// AddCategories handles POST /posts/{id}/categories.
func (h *Posts) AddCategories(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.categoryIDs(w, r)
	if !ok {
		return
	}

	added, err := h.svc.AddCategories(id, req.CategoryIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.invalidatePost(r, id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "added": added})
}

// RemoveCategories handles DELETE /posts/{id}/categories.
func (h *Posts) RemoveCategories(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.categoryIDs(w, r)
	if !ok {
		return
	}

	removed, err := h.svc.RemoveCategories(id, req.CategoryIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.invalidatePost(r, id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "removed": removed})
}

// SetCategories handles PUT /posts/{id}/categories. An empty list clears all
// assignments.
func (h *Posts) SetCategories(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid post ID")
		return
	}

	var req setCategoriesRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid request body")
		return
	}

	count, err := h.svc.SetCategories(id, req.CategoryIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.invalidatePost(r, id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

// categoryIDs parses the id parameter and a validated categoryIds body for
// the add/remove endpoints.
func (h *Posts) categoryIDs(w http.ResponseWriter, r *http.Request) (int64, categoryIDsRequest, bool) {
	var req categoryIDsRequest

	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid post ID")
		return 0, req, false
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, string(service.CodeBadRequest), "Invalid request body")
		return 0, req, false
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return 0, req, false
	}
	return id, req, true
}

// invalidatePost drops the cached entry for the post's slug after a category
// mutation, which changes the embedded category list.
func (h *Posts) invalidatePost(r *http.Request, id int64) {
	if h.cache == nil {
		return
	}
	if p, err := h.svc.GetByID(id); err == nil && p.Status == models.PostStatusPublished {
		h.cache.InvalidatePost(r.Context(), p.Slug)
	}
}

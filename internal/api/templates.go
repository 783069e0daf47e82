package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/store"
)

// templatesAPIHandler provides REST handlers for saved template management.
type templatesAPIHandler struct {
	templates *store.TemplateStore
}

func registerTemplateRoutes(r chi.Router, templates *store.TemplateStore) {
	h := &templatesAPIHandler{templates: templates}
	r.Get("/templates", h.List)
	r.Post("/templates", h.Create)
	r.Get("/templates/{id}", h.Get)
	r.Put("/templates/{id}", h.Update)
	r.Delete("/templates/{id}", h.Delete)
}

func toTemplateResponse(t *store.Template) *TemplateResponse {
	return &TemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Body:      t.Body,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// List returns all saved templates.
// GET /api/v1/templates
func (h *templatesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	resp := &TemplateListResponse{Templates: make([]*TemplateResponse, 0, len(templates))}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, toTemplateResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create saves a new named template.
// POST /api/v1/templates
func (h *templatesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", "MISSING_NAME")
		return
	}

	t, err := h.templates.Create(r.Context(), req.Name, req.Body)
	if err != nil {
		writeError(w, http.StatusConflict, "a template with that name already exists", "DUPLICATE_NAME")
		return
	}
	writeJSON(w, http.StatusCreated, toTemplateResponse(t))
}

// Get returns one saved template.
// GET /api/v1/templates/{id}
func (h *templatesAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "template not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(t))
}

// Update replaces a saved template's name and body.
// PUT /api/v1/templates/{id}
func (h *templatesAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.templates.GetByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "template not found", "NOT_FOUND")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", "MISSING_NAME")
		return
	}

	t, err := h.templates.Update(r.Context(), id, req.Name, req.Body)
	if err != nil {
		writeError(w, http.StatusConflict, "a template with that name already exists", "DUPLICATE_NAME")
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(t))
}

// Delete removes a saved template.
// DELETE /api/v1/templates/{id}
func (h *templatesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

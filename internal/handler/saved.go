package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/session"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/store"
)

// SavedTemplatesPage is the template data for the saved-templates view.
type SavedTemplatesPage struct {
	BasePage
	Templates []*store.Template
}

// SavedTemplatesHandler manages named templates persisted in the store.
type SavedTemplatesHandler struct {
	sessions  *scs.SessionManager
	templates *store.TemplateStore
}

// NewSavedTemplatesHandler creates a new SavedTemplatesHandler.
func NewSavedTemplatesHandler(sm *scs.SessionManager, ts *store.TemplateStore) *SavedTemplatesHandler {
	return &SavedTemplatesHandler{sessions: sm, templates: ts}
}

// Index lists saved templates.
// GET /templates
func (h *SavedTemplatesHandler) Index(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list templates", http.StatusInternalServerError)
		return
	}
	render(w, "saved_templates.html", SavedTemplatesPage{
		BasePage:  BasePage{Flash: popFlash(h.sessions, r.Context())},
		Templates: templates,
	})
}

// Create saves the current workspace template under a name.
// POST /templates
func (h *SavedTemplatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		putFlash(h.sessions, r.Context(), "error", "A template name is required.")
		http.Redirect(w, r, "/templates", http.StatusSeeOther)
		return
	}

	ws := session.LoadWorkspace(h.sessions, r.Context())
	if _, err := h.templates.Create(r.Context(), name, ws.Template); err != nil {
		putFlash(h.sessions, r.Context(), "error", "A template with that name already exists.")
		http.Redirect(w, r, "/templates", http.StatusSeeOther)
		return
	}

	putFlash(h.sessions, r.Context(), "success", "Template saved as "+name+".")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

// Load replaces the workspace template with a saved one.
// POST /templates/{id}/load
func (h *SavedTemplatesHandler) Load(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load template", http.StatusInternalServerError)
		return
	}

	ws := session.LoadWorkspace(h.sessions, r.Context())
	ws.Template = t.Body
	ws.Results = nil
	session.SaveWorkspace(h.sessions, r.Context(), ws)

	putFlash(h.sessions, r.Context(), "success", "Loaded template "+t.Name+".")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes a saved template.
// DELETE /templates/{id} (also POST /templates/{id}/delete for plain forms)
func (h *SavedTemplatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "failed to delete template", http.StatusInternalServerError)
		return
	}
	if isHTMX(r) {
		templates, err := h.templates.List(r.Context())
		if err != nil {
			http.Error(w, "failed to list templates", http.StatusInternalServerError)
			return
		}
		renderPageFragment(w, "saved_templates.html", "template_list", SavedTemplatesPage{Templates: templates})
		return
	}
	putFlash(h.sessions, r.Context(), "success", "Template deleted.")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

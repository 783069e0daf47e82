// Package handler serves the web UI: a session-backed workspace for editing a
// prompt template, fetching activity content, supplying answers, and
// generating prompts.
package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/api"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/store"
	"github.com/gautamsabaresh/prompt-generator-activity/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	Client         *activity.Client
	TemplateStore  *store.TemplateStore
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(deps.SessionManager.LoadAndSave)

	// Static assets (embedded). Use fs.Sub so the file server sees
	// css/app.css directly, not static/css/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(staticSub))))

	workspace := NewWorkspaceHandler(deps.SessionManager, deps.Client)
	saved := NewSavedTemplatesHandler(deps.SessionManager, deps.TemplateStore)

	r.Get("/", workspace.Show)
	r.Post("/workspace/template", workspace.SaveTemplate)
	r.Post("/workspace/fetch", workspace.Fetch)
	r.Post("/workspace/variables", workspace.SaveVariables)
	r.Post("/workspace/answers", workspace.SaveAnswers)
	r.Post("/workspace/upload", workspace.Upload)
	r.Post("/workspace/generate", workspace.Generate)
	r.Get("/workspace/export.csv", workspace.ExportCSV)
	r.Get("/workspace/export.xlsx", workspace.ExportXLSX)

	r.Get("/templates", saved.Index)
	r.Post("/templates", saved.Create)
	r.Post("/templates/{id}/load", saved.Load)
	r.Delete("/templates/{id}", saved.Delete)
	r.Post("/templates/{id}/delete", saved.Delete)

	// JSON API
	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Client:        deps.Client,
		TemplateStore: deps.TemplateStore,
	}))

	r.Handle("/metrics", promhttp.Handler())

	return r
}

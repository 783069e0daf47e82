// Package api exposes the JSON API mounted at /api/v1.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Client        *activity.Client
	TemplateStore *store.TemplateStore
}

// NewAPIRouter assembles the /api/v1 router.
func NewAPIRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	registerGenerateRoutes(r, deps.Client)
	registerTemplateRoutes(r, deps.TemplateStore)
	return r
}

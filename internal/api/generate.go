package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/metrics"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/prompt"
)

type generateAPIHandler struct {
	client *activity.Client
}

func registerGenerateRoutes(r chi.Router, client *activity.Client) {
	h := &generateAPIHandler{client: client}
	r.Post("/fetch", h.Fetch)
	r.Post("/generate", h.Generate)
}

// Fetch pulls activity content from a URL and returns the extracted variables.
// POST /api/v1/fetch
func (h *generateAPIHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required", "MISSING_URL")
		return
	}

	vars, err := h.client.FetchVariables(r.Context(), req.URL)
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("error").Inc()
		writeError(w, http.StatusBadGateway, err.Error(), "FETCH_FAILED")
		return
	}
	metrics.FetchesTotal.WithLabelValues("ok").Inc()

	writeJSON(w, http.StatusOK, &FetchResponse{Variables: vars})
}

// Generate fills a template with the supplied variables and answer(s).
// POST /api/v1/generate
func (h *generateAPIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if req.Template == "" {
		writeError(w, http.StatusBadRequest, "template is required", "MISSING_TEMPLATE")
		return
	}

	vars := prompt.Variables{}
	for name, value := range req.Variables {
		if prompt.Allowed(name) && name != prompt.AnswerVariable {
			vars[name] = value
		}
	}

	var warnings []string
	if unknown := prompt.UnknownTokens(req.Template); unknown != nil {
		metrics.UnknownTokensTotal.Add(float64(len(unknown)))
		for _, name := range unknown {
			warnings = append(warnings, fmt.Sprintf("template uses unknown variable {{%s}}; left as-is", name))
		}
	}

	answers := req.Answers
	if len(answers) == 0 {
		answers = []string{req.Answer}
	}

	prompts := prompt.FillBatch(req.Template, vars, answers)
	metrics.GenerationsTotal.Add(float64(len(prompts)))

	writeJSON(w, http.StatusOK, &GenerateResponse{Prompts: prompts, Warnings: warnings})
}

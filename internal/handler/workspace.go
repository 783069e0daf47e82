package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/batch"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/metrics"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/prompt"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/session"
)

// maxUploadBytes bounds answer file uploads.
const maxUploadBytes = 10 << 20

// VariableField is one editable variable row on the workspace page.
type VariableField struct {
	Name  string
	Value string
}

// WorkspacePage is the template data for the workspace view.
type WorkspacePage struct {
	BasePage
	Workspace *session.Workspace
	Variables []VariableField
	Warnings  []string
	Results   []string
	BatchSize int
}

// WorkspaceHandler serves the prompt-editing workspace.
type WorkspaceHandler struct {
	sessions *scs.SessionManager
	client   *activity.Client
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(sm *scs.SessionManager, client *activity.Client) *WorkspaceHandler {
	return &WorkspaceHandler{sessions: sm, client: client}
}

// pageData builds the workspace page model from session state.
func (h *WorkspaceHandler) pageData(r *http.Request, ws *session.Workspace) WorkspacePage {
	fields := make([]VariableField, 0, len(prompt.ExtractedVariables))
	for _, name := range prompt.ExtractedVariables {
		fields = append(fields, VariableField{Name: name, Value: ws.Variables[name]})
	}
	return WorkspacePage{
		BasePage:  BasePage{Flash: popFlash(h.sessions, r.Context())},
		Workspace: ws,
		Variables: fields,
		Warnings:  prompt.UnknownTokens(ws.Template),
		Results:   ws.Results,
		BatchSize: len(ws.BatchAnswers),
	}
}

// Show renders the workspace page.
// GET /
func (h *WorkspaceHandler) Show(w http.ResponseWriter, r *http.Request) {
	ws := session.LoadWorkspace(h.sessions, r.Context())
	render(w, "workspace.html", h.pageData(r, ws))
}

// SaveTemplate stores the edited template text in the session.
// POST /workspace/template
func (h *WorkspaceHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ws := session.LoadWorkspace(h.sessions, r.Context())
	ws.Template = r.FormValue("template")
	session.SaveWorkspace(h.sessions, r.Context(), ws)

	if unknown := prompt.UnknownTokens(ws.Template); unknown != nil {
		putFlash(h.sessions, r.Context(), "warning",
			"Template uses variables not in the predefined list: "+strings.Join(unknown, ", "))
	} else {
		putFlash(h.sessions, r.Context(), "success", "Template saved.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Fetch pulls activity content from the content URL and populates the
// variable fields. On any failure the six variables reset to empty and the
// error is surfaced as a flash message; the session continues.
// POST /workspace/fetch
func (h *WorkspaceHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ws := session.LoadWorkspace(h.sessions, r.Context())
	ws.ContentURL = strings.TrimSpace(r.FormValue("content_url"))

	if ws.ContentURL == "" {
		putFlash(h.sessions, r.Context(), "warning", "Please enter a Content URL to fetch variables.")
		session.SaveWorkspace(h.sessions, r.Context(), ws)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	vars, err := h.client.FetchVariables(r.Context(), ws.ContentURL)
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("error").Inc()
		ws.Variables = prompt.NewVariables()
		session.SaveWorkspace(h.sessions, r.Context(), ws)
		putFlash(h.sessions, r.Context(), "error", "Error fetching URL: "+err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	metrics.FetchesTotal.WithLabelValues("ok").Inc()

	ws.Variables = vars
	session.SaveWorkspace(h.sessions, r.Context(), ws)
	putFlash(h.sessions, r.Context(), "success", "Successfully fetched and processed data from URL.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SaveVariables stores manual edits to the variable fields.
// POST /workspace/variables
func (h *WorkspaceHandler) SaveVariables(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ws := session.LoadWorkspace(h.sessions, r.Context())
	for _, name := range prompt.ExtractedVariables {
		if r.Form.Has("var_" + name) {
			ws.Variables[name] = r.FormValue("var_" + name)
		}
	}
	session.SaveWorkspace(h.sessions, r.Context(), ws)
	putFlash(h.sessions, r.Context(), "success", "Variables updated.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SaveAnswers stores the answer input mode and single-answer text. Switching
// to single mode drops any loaded batch, and vice versa, mirroring the two
// mutually exclusive input paths.
// POST /workspace/answers
func (h *WorkspaceHandler) SaveAnswers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ws := session.LoadWorkspace(h.sessions, r.Context())

	switch mode := r.FormValue("answer_mode"); mode {
	case session.ModeSingle:
		ws.AnswerMode = session.ModeSingle
		ws.Answer = r.FormValue("answer")
		ws.ClearBatch()
	case session.ModeBatch:
		ws.AnswerMode = session.ModeBatch
		ws.Answer = ""
	default:
		http.Error(w, "invalid answer mode", http.StatusBadRequest)
		return
	}

	session.SaveWorkspace(h.sessions, r.Context(), ws)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Upload accepts a CSV or XLSX answers file. A file without the required
// "Answers" column is rejected whole and any previously loaded answers are
// cleared.
// POST /workspace/upload
func (h *WorkspaceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("answers_file")
	if err != nil {
		http.Error(w, "answers file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ws := session.LoadWorkspace(h.sessions, r.Context())
	ws.AnswerMode = session.ModeBatch

	answers, err := readAnswers(header.Filename, file)
	if err != nil {
		metrics.BatchLoadErrorsTotal.Inc()
		ws.ClearBatch()
		session.SaveWorkspace(h.sessions, r.Context(), ws)
		putFlash(h.sessions, r.Context(), "error", "Could not load answers: "+err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	metrics.BatchAnswersLoadedTotal.Add(float64(len(answers)))
	ws.BatchAnswers = answers
	ws.BatchFilename = header.Filename
	ws.Results = nil
	session.SaveWorkspace(h.sessions, r.Context(), ws)
	putFlash(h.sessions, r.Context(), "success",
		fmt.Sprintf("Successfully read %d answers from %q.", len(answers), header.Filename))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// readAnswers dispatches to the CSV or XLSX reader by filename.
func readAnswers(filename string, file io.Reader) ([]string, error) {
	format, err := batch.FormatFor(filename)
	if err != nil {
		return nil, err
	}
	if format == "xlsx" {
		return batch.ReadAnswersXLSX(file)
	}
	return batch.ReadAnswersCSV(file)
}

// Generate runs substitution for the current workspace state and stores the
// results in the session for display and export.
// POST /workspace/generate
func (h *WorkspaceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ws := session.LoadWorkspace(h.sessions, r.Context())

	if ws.AnswerMode == session.ModeBatch && len(ws.BatchAnswers) == 0 {
		putFlash(h.sessions, r.Context(), "warning", "Batch mode selected, but no answers have been loaded.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	answers := ws.Answers()
	ws.Results = prompt.FillBatch(ws.Template, ws.Variables, answers)
	metrics.GenerationsTotal.Add(float64(len(ws.Results)))
	session.SaveWorkspace(h.sessions, r.Context(), ws)

	if unknown := prompt.UnknownTokens(ws.Template); unknown != nil {
		metrics.UnknownTokensTotal.Add(float64(len(unknown)))
		putFlash(h.sessions, r.Context(), "warning",
			"Generated with variables not in the predefined list: "+strings.Join(unknown, ", "))
	} else {
		putFlash(h.sessions, r.Context(), "success",
			fmt.Sprintf("Generated %d prompt(s).", len(ws.Results)))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ExportCSV downloads the last generated batch as CSV.
// GET /workspace/export.csv
func (h *WorkspaceHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ws := session.LoadWorkspace(h.sessions, r.Context())
	if len(ws.Results) == 0 {
		http.Error(w, "no generated prompts to export", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="generated_prompts.csv"`)
	if err := batch.WriteResultsCSV(w, ws.Results); err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
	}
}

// ExportXLSX downloads the last generated batch as an XLSX workbook.
// GET /workspace/export.xlsx
func (h *WorkspaceHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	ws := session.LoadWorkspace(h.sessions, r.Context())
	if len(ws.Results) == 0 {
		http.Error(w, "no generated prompts to export", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="generated_prompts.xlsx"`)
	if err := batch.WriteResultsXLSX(w, ws.Results); err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
	}
}

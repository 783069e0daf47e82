package session

import (
	"context"
	"encoding/json"
	"log"

	"github.com/alexedwards/scs/v2"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/prompt"
)

// Answer input modes.
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

const workspaceKey = "workspace"

// Workspace is the transient state of one editing session: the current
// template text, the last fetch inputs and results, and the supplied answers.
// It lives in the session only; nothing is persisted unless the user saves a
// template explicitly.
type Workspace struct {
	Template      string           `json:"template"`
	ContentURL    string           `json:"content_url"`
	Variables     prompt.Variables `json:"variables"`
	AnswerMode    string           `json:"answer_mode"`
	Answer        string           `json:"answer"`
	BatchAnswers  []string         `json:"batch_answers,omitempty"`
	BatchFilename string           `json:"batch_filename,omitempty"`
	Results       []string         `json:"results,omitempty"`
}

// NewWorkspace returns the initial workspace: the default template, empty
// variables, and single-answer mode.
func NewWorkspace() *Workspace {
	return &Workspace{
		Template:   prompt.DefaultTemplate,
		Variables:  prompt.NewVariables(),
		AnswerMode: ModeSingle,
	}
}

// ClearBatch drops any loaded batch answers, e.g. after a failed upload.
func (w *Workspace) ClearBatch() {
	w.BatchAnswers = nil
	w.BatchFilename = ""
}

// Answers returns the answer sequence for generation: the loaded batch in
// batch mode, otherwise the single answer.
func (w *Workspace) Answers() []string {
	if w.AnswerMode == ModeBatch {
		return w.BatchAnswers
	}
	return []string{w.Answer}
}

// LoadWorkspace reads the workspace from the session, returning a fresh one
// when absent or undecodable.
func LoadWorkspace(sm *scs.SessionManager, ctx context.Context) *Workspace {
	raw := sm.GetBytes(ctx, workspaceKey)
	if len(raw) == 0 {
		return NewWorkspace()
	}
	var ws Workspace
	if err := json.Unmarshal(raw, &ws); err != nil {
		log.Printf("discarding undecodable workspace state: %v", err)
		return NewWorkspace()
	}
	if ws.Variables == nil {
		ws.Variables = prompt.NewVariables()
	}
	if ws.AnswerMode == "" {
		ws.AnswerMode = ModeSingle
	}
	return &ws
}

// SaveWorkspace writes the workspace back into the session.
func SaveWorkspace(sm *scs.SessionManager, ctx context.Context, ws *Workspace) {
	raw, err := json.Marshal(ws)
	if err != nil {
		log.Printf("marshal workspace state: %v", err)
		return
	}
	sm.Put(ctx, workspaceKey, raw)
}

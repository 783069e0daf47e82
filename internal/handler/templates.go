package handler

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/gautamsabaresh/prompt-generator-activity/web"
)

// BasePage carries layout-level data available to every template.
type BasePage struct {
	Flash *Flash
}

// pageCache maps a render key (e.g. "workspace.html") to a compiled template
// set containing base.html + partials + that one page file. Each page gets its
// own set so {{define "content"}} blocks don't collide.
var pageCache map[string]*template.Template

func init() {
	partials, err := fs.Glob(web.TemplateFS, "templates/partials/*.html")
	if err != nil {
		panic("glob partials: " + err.Error())
	}

	pageCache = make(map[string]*template.Template)
	err = fs.WalkDir(web.TemplateFS, "templates/pages", func(p string, d fs.DirEntry, e error) error {
		if e != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
			return e
		}

		files := make([]string, 0, 2+len(partials))
		files = append(files, "templates/base.html")
		files = append(files, partials...)
		files = append(files, p)

		t, err := template.New("").ParseFS(web.TemplateFS, files...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		pageCache[filepath.Base(p)] = t
		return nil
	})
	if err != nil {
		panic("build page cache: " + err.Error())
	}
}

// Flash represents a one-time notification message shown to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

const (
	flashTypeKey    = "flash_type"
	flashMessageKey = "flash_message"
)

// putFlash stores a one-time notification in the session.
func putFlash(sm *scs.SessionManager, ctx context.Context, kind, message string) {
	sm.Put(ctx, flashTypeKey, kind)
	sm.Put(ctx, flashMessageKey, message)
}

// popFlash removes and returns the pending notification, if any.
func popFlash(sm *scs.SessionManager, ctx context.Context) *Flash {
	message := sm.PopString(ctx, flashMessageKey)
	if message == "" {
		return nil
	}
	return &Flash{Type: sm.PopString(ctx, flashTypeKey), Message: message}
}

// isHTMX returns true when the request was sent by HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// render executes a full-page template (base layout + named page).
func render(w http.ResponseWriter, tmpl string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t, ok := pageCache[tmpl]
	if !ok {
		http.Error(w, "template not found: "+tmpl, http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// renderPageFragment executes a named template from a specific page's set.
// Use for HTMX partial renders that need a page-local block.
func renderPageFragment(w http.ResponseWriter, page, tmpl string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t, ok := pageCache[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, tmpl, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

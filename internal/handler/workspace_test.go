package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/handler"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/store"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/testutil"
)

// testEnv drives the full router while carrying the session cookie across
// requests, like a browser would.
type testEnv struct {
	router  http.Handler
	cookies []*http.Cookie
	ts      *store.TemplateStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	sm := scs.New() // in-memory session store is fine for handler tests
	sm.Lifetime = time.Hour

	ts := store.NewTemplateStore(db)
	router := handler.NewRouter(handler.Deps{
		SessionManager: sm,
		Client:         activity.NewClient(10 * time.Second),
		TemplateStore:  ts,
	})
	return &testEnv{router: router, ts: ts}
}

// do sends a request, records any session cookie, and returns the recorder.
func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		e.cookies = cookies
	}
	return rec
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

// uploadFile posts a multipart answers file.
func (e *testEnv) uploadFile(t *testing.T, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("answers_file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/workspace/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(t, req)
}

// followRedirect asserts a 303 and fetches the target page.
func (e *testEnv) followRedirect(t *testing.T, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body = %s", rec.Code, rec.Body.String())
	}
	return e.get(t, rec.Header().Get("Location"))
}

func TestWorkspace_ShowDefaults(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "{{student_answer}}") {
		t.Error("workspace should show the default template")
	}
	if !strings.Contains(body, "task_instruction") {
		t.Error("workspace should list the variable fields")
	}
}

func TestWorkspace_SaveTemplatePersistsInSession(t *testing.T) {
	env := newTestEnv(t)
	page := env.followRedirect(t, env.postForm(t, "/workspace/template", url.Values{
		"template": {"My custom {{student_answer}} prompt"},
	}))
	if !strings.Contains(page.Body.String(), "My custom {{student_answer}} prompt") {
		t.Error("saved template text not shown on reload")
	}
}

func TestWorkspace_SaveTemplateWarnsOnUnknownTokens(t *testing.T) {
	env := newTestEnv(t)
	page := env.followRedirect(t, env.postForm(t, "/workspace/template", url.Values{
		"template": {"uses {{not_a_var}}"},
	}))
	if !strings.Contains(page.Body.String(), "not_a_var") {
		t.Error("expected a flash naming the unknown variable")
	}
}

func TestWorkspace_FetchPopulatesVariables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"referenceScreens":[{"category":"vocabulary","contents":{"vocabularyList":["cat","dog"]}}]}`))
	}))
	defer srv.Close()

	env := newTestEnv(t)
	page := env.followRedirect(t, env.postForm(t, "/workspace/fetch", url.Values{
		"content_url": {srv.URL},
	}))
	if !strings.Contains(page.Body.String(), "cat, dog") {
		t.Error("fetched vocabulary_list not shown")
	}
}

func TestWorkspace_FetchFailureResetsVariables(t *testing.T) {
	env := newTestEnv(t)

	// Seed a variable manually first.
	env.followRedirect(t, env.postForm(t, "/workspace/variables", url.Values{
		"var_task_instruction": {"seeded value"},
	}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	page := env.followRedirect(t, env.postForm(t, "/workspace/fetch", url.Values{
		"content_url": {srv.URL},
	}))
	body := page.Body.String()
	if strings.Contains(body, "seeded value") {
		t.Error("failed fetch must reset all variables to empty")
	}
	if !strings.Contains(body, "Error fetching URL") {
		t.Error("failed fetch should surface an error flash")
	}
}

func TestWorkspace_GenerateSingle(t *testing.T) {
	env := newTestEnv(t)
	env.followRedirect(t, env.postForm(t, "/workspace/template", url.Values{
		"template": {"Hello {{student_answer}}!"},
	}))
	env.followRedirect(t, env.postForm(t, "/workspace/answers", url.Values{
		"answer_mode": {"single"},
		"answer":      {"world"},
	}))

	page := env.followRedirect(t, env.postForm(t, "/workspace/generate", nil))
	if !strings.Contains(page.Body.String(), "Hello world!") {
		t.Errorf("generated prompt not shown; body = %s", page.Body.String())
	}
}

func TestWorkspace_BatchUploadAndExport(t *testing.T) {
	env := newTestEnv(t)
	env.followRedirect(t, env.postForm(t, "/workspace/template", url.Values{
		"template": {"A: {{student_answer}}"},
	}))

	page := env.followRedirect(t, env.uploadFile(t, "answers.csv", []byte("Answers\none\ntwo\n")))
	if !strings.Contains(page.Body.String(), "2 answers") {
		t.Error("upload success flash should report the answer count")
	}

	env.followRedirect(t, env.postForm(t, "/workspace/generate", nil))

	export := env.get(t, "/workspace/export.csv")
	if export.Code != http.StatusOK {
		t.Fatalf("export status = %d", export.Code)
	}
	want := "generated_prompt\nA: one\nA: two\n"
	if export.Body.String() != want {
		t.Errorf("export = %q, want %q", export.Body.String(), want)
	}
}

func TestWorkspace_UploadMissingColumnClearsAnswers(t *testing.T) {
	env := newTestEnv(t)

	// Load a good batch first.
	env.followRedirect(t, env.uploadFile(t, "answers.csv", []byte("Answers\nkept\n")))

	// A bad file must clear it, not keep the old batch.
	page := env.followRedirect(t, env.uploadFile(t, "answers.csv", []byte("Responses\nnew\n")))
	if !strings.Contains(page.Body.String(), "Could not load answers") {
		t.Error("expected an error flash for the missing column")
	}

	gen := env.followRedirect(t, env.postForm(t, "/workspace/generate", nil))
	if !strings.Contains(gen.Body.String(), "no answers have been loaded") {
		t.Error("generation should report the cleared batch")
	}
}

func TestWorkspace_UploadUnsupportedExtension(t *testing.T) {
	env := newTestEnv(t)
	page := env.followRedirect(t, env.uploadFile(t, "answers.txt", []byte("Answers\nx\n")))
	if !strings.Contains(page.Body.String(), "Could not load answers") {
		t.Error("expected an error flash for unsupported file type")
	}
}

func TestWorkspace_ExportWithoutResults(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.get(t, "/workspace/export.csv"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before any generation", rec.Code)
	}
	if rec := env.get(t, "/workspace/export.xlsx"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before any generation", rec.Code)
	}
}

func TestWorkspace_StaticAndMetricsRoutes(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.get(t, "/metrics"); rec.Code != http.StatusOK {
		t.Errorf("/metrics status = %d", rec.Code)
	}
	if rec := env.get(t, "/static/css/app.css"); rec.Code != http.StatusOK {
		t.Errorf("/static/css/app.css status = %d", rec.Code)
	}
}

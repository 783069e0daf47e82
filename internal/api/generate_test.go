package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/api"
)

func TestGenerate_SingleAnswer(t *testing.T) {
	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/generate", api.GenerateRequest{
		Template: "Hello {{student_answer}}!",
		Answer:   "world",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp api.GenerateResponse
	decodeBody(t, rec, &resp)
	if len(resp.Prompts) != 1 || resp.Prompts[0] != "Hello world!" {
		t.Errorf("prompts = %v", resp.Prompts)
	}
	if resp.Warnings != nil {
		t.Errorf("warnings = %v, want none", resp.Warnings)
	}
}

func TestGenerate_Batch(t *testing.T) {
	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/generate", api.GenerateRequest{
		Template:  "{{task_instruction}}: {{student_answer}}",
		Variables: map[string]string{"task_instruction": "Describe"},
		Answers:   []string{"one", "two", "three"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp api.GenerateResponse
	decodeBody(t, rec, &resp)
	want := []string{"Describe: one", "Describe: two", "Describe: three"}
	if len(resp.Prompts) != len(want) {
		t.Fatalf("prompts = %v", resp.Prompts)
	}
	for i := range want {
		if resp.Prompts[i] != want[i] {
			t.Errorf("prompts[%d] = %q, want %q", i, resp.Prompts[i], want[i])
		}
	}
}

func TestGenerate_UnknownTokenWarning(t *testing.T) {
	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/generate", api.GenerateRequest{
		Template: "x {{mystery}} y",
		Answer:   "a",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp api.GenerateResponse
	decodeBody(t, rec, &resp)
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "mystery") {
		t.Errorf("warnings = %v", resp.Warnings)
	}
	if resp.Prompts[0] != "x {{mystery}} y" {
		t.Errorf("prompt = %q, unknown token must stay verbatim", resp.Prompts[0])
	}
}

func TestGenerate_AnswerVariableNotInjectableViaVariables(t *testing.T) {
	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/generate", api.GenerateRequest{
		Template:  "{{student_answer}}",
		Variables: map[string]string{"student_answer": "spoofed"},
		Answer:    "real",
	})
	var resp api.GenerateResponse
	decodeBody(t, rec, &resp)
	if resp.Prompts[0] != "real" {
		t.Errorf("prompt = %q, answer must come from the answer field only", resp.Prompts[0])
	}
}

func TestGenerate_MissingTemplate(t *testing.T) {
	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/generate", api.GenerateRequest{Answer: "a"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerate_InvalidBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"interactions":[{"instruction":"Do the thing"}]}`))
	}))
	defer srv.Close()

	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/fetch", api.FetchRequest{URL: srv.URL})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp api.FetchResponse
	decodeBody(t, rec, &resp)
	if got := resp.Variables["task_instruction"]; got != "Do the thing" {
		t.Errorf("task_instruction = %q", got)
	}
	if len(resp.Variables) != 6 {
		t.Errorf("variables = %v, want the 6 fixed names", resp.Variables)
	}
}

func TestFetch_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/fetch", api.FetchRequest{URL: srv.URL})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestFetch_MissingURL(t *testing.T) {
	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodPost, "/fetch", api.FetchRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

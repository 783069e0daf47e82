package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/api"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/store"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/testutil"
)

// testEnv holds the router and stores needed for API integration tests.
type testEnv struct {
	Router        http.Handler
	TemplateStore *store.TemplateStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	ts := store.NewTemplateStore(db)
	router := api.NewAPIRouter(api.Deps{
		Client:        activity.NewClient(10 * time.Second),
		TemplateStore: ts,
	})
	return &testEnv{Router: router, TemplateStore: ts}
}

// doJSON sends a JSON request through the router and returns the recorder.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorder's JSON body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

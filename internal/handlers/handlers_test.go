package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/problem"
	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/service"
	"github.com/abhisek/mathquest/internal/store"
)

const problemJSON = `{
  "problem_text": "Maya has 8 marbles and finds 7 more. How many marbles does she have now?",
  "final_answer": 15,
  "steps": [
    "Start with the 8 marbles Maya already has.",
    "She finds 7 more marbles.",
    "Add them together: 8 + 7 = 15.",
    "Final answer: 15"
  ]
}`

func newTestRouter(t *testing.T, mock *llm.MockProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	st, err := store.Open(store.Config{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	genCfg := problem.DefaultConfig()
	genCfg.Retry = retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	gen := problem.NewGenerator(mock, genCfg)

	svc := service.New(st, gen, service.Config{
		ReadRetry:  retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond},
		WriteRetry: retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond},
	})
	return NewRouter(svc, []string{"*"})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func generateSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/problems", `{"difficulty":"medium","problem_type":"addition"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create problem: %d %s", w.Code, w.Body.String())
	}
	id, _ := decode(t, w)["session_id"].(string)
	if id == "" {
		t.Fatal("missing session_id")
	}
	return id
}

func TestCreateProblem(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: problemJSON})
	r := newTestRouter(t, mock)

	w := doJSON(t, r, http.MethodPost, "/api/problems", `{"difficulty":"medium","problem_type":"addition"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("Cache-Control = %q", cc)
	}
	body := decode(t, w)
	if body["problem_text"] == "" || body["difficulty"] != "medium" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateProblem_Validation(t *testing.T) {
	r := newTestRouter(t, llm.NewMockProvider())

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing fields", `{}`, ""},
		{"bad difficulty", `{"difficulty":"impossible","problem_type":"addition"}`, "difficulty"},
		{"bad type", `{"difficulty":"easy","problem_type":"calculus"}`, "problem_type"},
		{"malformed json", `{`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/problems", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			body := decode(t, w)
			if body["error"] != "invalid_request" {
				t.Fatalf("unexpected error shape: %v", body)
			}
			if tc.field != "" && body["field"] != tc.field {
				t.Fatalf("field = %v, want %s", body["field"], tc.field)
			}
		})
	}
}

func TestCreateProblem_GenerationFailure(t *testing.T) {
	// Empty mock queue: every generation attempt fails as unavailable.
	r := newTestRouter(t, llm.NewMockProvider())

	w := doJSON(t, r, http.MethodPost, "/api/problems", `{"difficulty":"easy","problem_type":"addition"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if decode(t, w)["error"] != "generation_failed" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSubmitAnswer_SetsIdentityCookie(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: problemJSON})
	r := newTestRouter(t, mock)
	id := generateSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/submissions", `{"user_answer":15}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var minted *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "mpg_id" {
			minted = c
		}
	}
	if minted == nil {
		t.Fatal("expected mpg_id cookie on first scoring event")
	}
	if !minted.HttpOnly || minted.MaxAge != 30*24*60*60 {
		t.Fatalf("unexpected cookie attributes: %+v", minted)
	}

	body := decode(t, w)
	if body["is_correct"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
	sc, _ := body["score"].(map[string]any)
	if sc == nil || sc["points"] != float64(10) {
		t.Fatalf("unexpected score: %v", body["score"])
	}

	// The same cookie reads the score back.
	w = doJSON(t, r, http.MethodGet, "/api/score", "", minted)
	if w.Code != http.StatusOK {
		t.Fatalf("score status = %d", w.Code)
	}
	sc, _ = decode(t, w)["score"].(map[string]any)
	if sc == nil || sc["points"] != float64(10) {
		t.Fatalf("unexpected score readback: %s", w.Body.String())
	}
}

func TestSubmitAnswer_Validation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: problemJSON})
	r := newTestRouter(t, mock)
	id := generateSession(t, r)

	for _, body := range []string{`{}`, `{"user_answer":"fifteen"}`, ``} {
		w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/submissions", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d", body, w.Code)
		}
	}

	// A literal zero answer must bind.
	w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/submissions", `{"user_answer":0}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("zero answer rejected: %d %s", w.Code, w.Body.String())
	}
}

func TestGatingResponses(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: problemJSON})
	r := newTestRouter(t, mock)
	id := generateSession(t, r)

	if w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/submissions", `{"user_answer":15}`); w.Code != http.StatusCreated {
		t.Fatalf("submit: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/submissions", `{"user_answer":15}`)
	if w.Code != http.StatusConflict || decode(t, w)["error"] != "already_solved" {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/problems/unknown/submissions", `{"user_answer":1}`)
	if w.Code != http.StatusNotFound || decode(t, w)["error"] != "session_not_found" {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRevealBlocksSubmission(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: problemJSON})
	r := newTestRouter(t, mock)
	id := generateSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/solution", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reveal: %d %s", w.Code, w.Body.String())
	}
	steps, _ := decode(t, w)["steps"].([]any)
	if len(steps) != 4 {
		t.Fatalf("unexpected steps: %v", steps)
	}

	w = doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/submissions", `{"user_answer":15}`)
	if w.Code != http.StatusConflict || decode(t, w)["error"] != "solution_revealed" {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRequestHint(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: problemJSON},
		llm.MockResponse{Text: "Think about how many marbles Maya starts with."},
	)
	r := newTestRouter(t, mock)
	id := generateSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/hints", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["hint_count"] != float64(1) || body["deduction_applied"] != float64(0) {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["hint_text"] == "" {
		t.Fatal("missing hint text")
	}

	// Exhaust the remaining budget, then expect the cap.
	for i := 2; i <= 5; i++ {
		mock.AddResponse(llm.MockResponse{Text: fmt.Sprintf("Hint number %d.", i)})
		if w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/hints", ""); w.Code != http.StatusCreated {
			t.Fatalf("hint %d: %d", i, w.Code)
		}
	}
	w = doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/hints", "")
	if w.Code != http.StatusConflict || decode(t, w)["error"] != "max_hints" {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGetScore_NullWithoutIdentity(t *testing.T) {
	r := newTestRouter(t, llm.NewMockProvider())

	w := doJSON(t, r, http.MethodGet, "/api/score", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("Cache-Control = %q", cc)
	}
	if v, ok := decode(t, w)["score"]; !ok || v != nil {
		t.Fatalf("expected score: null, got %s", w.Body.String())
	}
}

func TestHistoryEndpoints(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: problemJSON})
	r := newTestRouter(t, mock)
	id := generateSession(t, r)
	if w := doJSON(t, r, http.MethodPost, "/api/problems/"+id+"/submissions", `{"user_answer":15}`); w.Code != http.StatusCreated {
		t.Fatalf("submit: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	sessions, _ := decode(t, w)["sessions"].([]any)
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %v", sessions)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/history?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/history?before=yesterday", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad before: %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodDelete, "/api/history", ""); w.Code != http.StatusNoContent {
		t.Fatalf("clear: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/history", "")
	sessions, _ = decode(t, w)["sessions"].([]any)
	if len(sessions) != 0 {
		t.Fatalf("history should be empty, got %v", sessions)
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, llm.NewMockProvider())
	w := doJSON(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || decode(t, w)["status"] != "ok" {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

package legal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	loader := newTestLoader(t)
	chain := reasoning.NewChain(nil, nil)
	svc := NewService(newTestRepo(t), chain, loader, opts, nil)

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc, chain, loader, nil))
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestTurnAndChallengeEndpoints(t *testing.T) {
	h := newTestRouter(t, Options{})

	w := do(t, h, http.MethodPost, "/conversations/c1/turns",
		`{"question":"Is X liable?","claims":["X signed"],"role":"admin","jurisdiction":"BR"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var turn TurnResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.Equal(t, "c1", turn.ConversationID)
	assert.Contains(t, turn.Template, "administrative guidance")
	assert.Contains(t, turn.Template, "international legal principles")
	assert.Len(t, turn.Unresolved, 1)

	w = do(t, h, http.MethodGet, "/conversations/c1/challenges", "")
	require.Equal(t, http.StatusOK, w.Code)
	var state ChallengeState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Contains(t, state.Formatted, "1. What evidence supports the claim that X signed?")

	w = do(t, h, http.MethodPost, "/conversations/c1/challenges/answer",
		`{"question":"What evidence supports the claim that X signed?","answer":"signed copy"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Empty(t, state.Unresolved)
	assert.Equal(t, "", state.Formatted)
}

func TestTurnBadRequests(t *testing.T) {
	h := newTestRouter(t, Options{})

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/conversations/c1/turns", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/conversations/c1/turns", `{"question":""}`).Code)
}

func TestStrictAnswerIsNotFound(t *testing.T) {
	h := newTestRouter(t, Options{StrictChallenges: true})

	w := do(t, h, http.MethodPost, "/conversations/c1/challenges/answer", `{"question":"unknown?","answer":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateEndpoint(t *testing.T) {
	h := newTestRouter(t, Options{})

	w := do(t, h, http.MethodPost, "/templates", `{"history":["Q1","A1"],"role":"user","jurisdiction":"US"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t,
		"Conversation so far: Q1 | A1 Provide a concise, helpful response. Reference United States law.",
		got["template"],
	)
}

func TestDetectDomainEndpoint(t *testing.T) {
	h := newTestRouter(t, Options{})

	w := do(t, h, http.MethodPost, "/domains/detect", `{"text":"What about GST assessment?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Domain  string         `json:"domain"`
		Profile map[string]any `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "tax", got.Domain)
	assert.Equal(t, "revenue service", got.Profile["authority"])

	w = do(t, h, http.MethodPost, "/domains/detect", `{"text":"hello"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "", got.Domain)
}

func TestReasoningEndpoint(t *testing.T) {
	h := newTestRouter(t, Options{})

	w := do(t, h, http.MethodPost, "/reasoning", `{"query":"Is X liable?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got reasoning.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Facts collected for: Is X liable?", got.Facts.Facts)
	assert.Contains(t, got.Conclusion.Conclusion, got.Application.Analysis)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/reasoning", `{}`).Code)
}

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"

	c := NewOpenAIClient("test-key", "", nil)
	c.client = openai.NewClientWithConfig(cfg)
	return c
}

func TestGetReplySendsSystemHistoryThenUser(t *testing.T) {
	var req openai.ChatCompletionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: `{"answer":"ok","confidence":0.5}`}},
			},
		})
	})

	got, err := c.GetReply(context.Background(), "sys", []Message{
		{Role: openai.ChatMessageRoleUser, Text: "earlier question"},
		{Role: openai.ChatMessageRoleAssistant, Text: "earlier answer"},
	}, "question")
	require.NoError(t, err)

	assert.Equal(t, `{"answer":"ok","confidence":0.5}`, got)
	assert.Equal(t, openai.GPT4oMini, req.Model)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "sys", req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Equal(t, "earlier question", req.Messages[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, req.Messages[2].Role)
	assert.Equal(t, "earlier answer", req.Messages[2].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[3].Role)
	assert.Equal(t, "question", req.Messages[3].Content)
}

func TestGetReplyNoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.GetReply(context.Background(), "sys", nil, "q")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

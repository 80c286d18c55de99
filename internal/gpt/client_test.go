package gpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fedutinova/careerchat/internal/common"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, status int, body any, calls *int32, seen *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func completion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  "o3-mini-2025-01-31",
		Choices: []openai.ChatCompletionChoice{{
			Index:        0,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func TestComplete_SendsSingleUserMessage(t *testing.T) {
	var calls int32
	var seen openai.ChatCompletionRequest
	srv := newCompletionServer(t, http.StatusOK, completion(`{"response":"ok","recommendations":[]}`), &calls, &seen)

	c := NewClient("sk-test", "", srv.URL+"/v1")
	res, err := c.Complete(context.Background(), "the prompt")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, DefaultModel, seen.Model)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, seen.Messages[0].Role)
	assert.Equal(t, "the prompt", seen.Messages[0].Content)
	assert.False(t, seen.Stream)

	assert.Equal(t, `{"response":"ok","recommendations":[]}`, res.Content)
	assert.Equal(t, "o3-mini-2025-01-31", res.Model)
	assert.Equal(t, 15, res.TokensUsed)
}

func TestComplete_UsesConfiguredModel(t *testing.T) {
	var calls int32
	var seen openai.ChatCompletionRequest
	srv := newCompletionServer(t, http.StatusOK, completion("{}"), &calls, &seen)

	c := NewClient("sk-test", "gpt-4o-mini", srv.URL+"/v1")
	_, err := c.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", seen.Model)
	assert.Equal(t, "gpt-4o-mini", c.Model())
}

func TestComplete_APIErrorIsUpstream(t *testing.T) {
	var calls int32
	body := map[string]any{"error": map[string]any{"message": "overloaded", "type": "server_error"}}
	srv := newCompletionServer(t, http.StatusInternalServerError, body, &calls, nil)

	c := NewClient("sk-test", "", srv.URL+"/v1")
	_, err := c.Complete(context.Background(), "p")

	require.Error(t, err)
	assert.True(t, common.IsUpstream(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "client must not retry")
}

func TestComplete_NoChoicesIsUpstream(t *testing.T) {
	var calls int32
	resp := completion("")
	resp.Choices = nil
	srv := newCompletionServer(t, http.StatusOK, resp, &calls, nil)

	c := NewClient("sk-test", "", srv.URL+"/v1")
	_, err := c.Complete(context.Background(), "p")
	assert.True(t, common.IsUpstream(err))
}

func TestComplete_NetworkErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient("sk-test", "", url+"/v1")
	_, err := c.Complete(context.Background(), "p")
	assert.True(t, common.IsUpstream(err))
}

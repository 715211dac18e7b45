package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organai/organai/providers/models"
)

func chatResponse(content string) string {
	return `{"choices": [{"message": {"role": "assistant", "content": "` + content + `"}, "finish_reason": "stop"}]}`
}

// The chat request carries the system prompt and the bearer token
func TestOpenAISuggestionRequest(t *testing.T) {
	var captured models.ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_, _ = w.Write([]byte(chatResponse("src/components")))
	}))
	defer server.Close()

	provider := NewOpenAISuggestionProvider(&OpenAIConfig{
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		ApiKey:  "sk-test",
	}, 5*time.Second)

	result, err := provider.SuggestionRequest(context.Background(), "where does Button.tsx go?")

	require.NoError(t, err)
	assert.Equal(t, "src/components", result)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "file organization expert")
	assert.Equal(t, "where does Button.tsx go?", captured.Messages[1].Content)
	assert.Equal(t, 50, captured.MaxTokens)
}

// A missing key fails fast without any request
func TestOpenAISuggestionRequest_MissingKey(t *testing.T) {
	provider := NewOpenAISuggestionProvider(&OpenAIConfig{}, time.Second)

	_, err := provider.SuggestionRequest(context.Background(), "prompt")

	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.False(t, models.IsTransient(err))
}

// 401 maps onto the credential sentinel, not the transient one
func TestOpenAISuggestionRequest_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "bad key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewOpenAISuggestionProvider(&OpenAIConfig{
		BaseURL: server.URL,
		ApiKey:  "sk-bad",
	}, time.Second)

	_, err := provider.SuggestionRequest(context.Background(), "prompt")

	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

// An empty choices list is treated as an unavailable backend
func TestOpenAISuggestionRequest_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	provider := NewOpenAISuggestionProvider(&OpenAIConfig{
		BaseURL: server.URL,
		ApiKey:  "sk-test",
	}, time.Second)

	_, err := provider.SuggestionRequest(context.Background(), "prompt")

	assert.ErrorIs(t, err, models.ErrBackendUnavailable)
}

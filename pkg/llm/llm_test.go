package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderWithoutKey(t *testing.T) {
	assert.Nil(t, NewProvider(Config{}, nil))
}

func TestOpenAIProviderComplete(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":0,"model":"test-model",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":" Hay 3 programas activos. "}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL + "/", Model: "test-model"})
	reply, err := p.Complete(context.Background(), "Eres NEMI Bot", "¿Cuántos programas hay?")
	require.NoError(t, err)

	assert.Equal(t, "Hay 3 programas activos.", reply)
	assert.Equal(t, "test-model", received.Model)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "¿Cuántos programas hay?", received.Messages[1].Content)
}

func TestOpenAIProviderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(Config{APIKey: "bad", BaseURL: srv.URL + "/"})
	_, err := p.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

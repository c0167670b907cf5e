package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateMessage(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotBody))

		json.NewEncoder(w).Encode(MessagesResponse{
			ID:      "msg_01",
			Content: []ContentBlock{{Type: "text", Text: "Hello! How can I help you today?"}},
			Usage:   Usage{InputTokens: 12, OutputTokens: 9},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.CreateMessage(context.Background(), &MessagesRequest{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 1024,
		Messages: []Message{
			{Role: "user", Content: []ContentBlock{TextBlock("Hello, Claude!")}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello! How can I help you today?", resp.Text())
	assert.Equal(t, 12, resp.Usage.InputTokens)

	assert.Equal(t, "test-key", gotHeaders.Get("X-Api-Key"))
	assert.Equal(t, apiVersion, gotHeaders.Get("Anthropic-Version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	// Unset sampling fields must be absent from the wire payload.
	for _, key := range []string{"system", "temperature", "top_p", "top_k"} {
		assert.NotContains(t, gotBody, key)
	}
}

func TestCreateMessageSendsSetParameters(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		json.NewEncoder(w).Encode(MessagesResponse{})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.CreateMessage(context.Background(), &MessagesRequest{
		Model:       "claude-sonnet-4-20250514",
		MaxTokens:   1024,
		System:      "You are a helpful assistant.",
		Temperature: floatPtr(0.7),
		Messages: []Message{
			{Role: "user", Content: []ContentBlock{TextBlock("What is 2+2?")}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "You are a helpful assistant.", gotBody["system"])
	assert.Equal(t, 0.7, gotBody["temperature"])
}

func TestCreateMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"Rate limited"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.CreateMessage(context.Background(), &MessagesRequest{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 64,
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, ErrTypeRateLimit, apiErr.Type)
	assert.Equal(t, "Rate limited", apiErr.Message)
	assert.True(t, apiErr.IsRateLimit())
	assert.False(t, apiErr.IsInvalidRequest())
}

func TestCreateMessageNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.CreateMessage(context.Background(), &MessagesRequest{Model: "m", MaxTokens: 1})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.True(t, apiErr.IsServerError())
}

func TestUserMessage(t *testing.T) {
	msg := UserMessage(&APIError{Status: 429, Type: ErrTypeRateLimit, Message: "Rate limited"})
	assert.Contains(t, msg, "Rate limited")
	assert.Contains(t, msg, "Status: 429")
	assert.Contains(t, msg, "Error: rate_limit_error")

	assert.Contains(t, UserMessage(context.DeadlineExceeded), "timed out")

	// Server-class errors carry a retry hint; client-side rejections don't.
	srvMsg := UserMessage(&APIError{Status: 529, Type: ErrTypeOverloaded, Message: "Overloaded"})
	assert.Contains(t, srvMsg, "Please try again")
	badMsg := UserMessage(&APIError{Status: 400, Type: ErrTypeInvalidRequest, Message: "max_tokens too large"})
	assert.NotContains(t, badMsg, "Please try again")
}

func TestResponseText(t *testing.T) {
	resp := &MessagesResponse{Content: []ContentBlock{
		{Type: "text", Text: "part one"},
		{Type: "tool_use"},
		{Type: "text", Text: " part two"},
	}}
	assert.Equal(t, "part one part two", resp.Text())

	assert.Empty(t, (&MessagesResponse{}).Text())
}

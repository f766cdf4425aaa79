package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/adapters/openai"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
)

func newServer(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := openai.New(openai.Options{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_Complete(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"  Adds two numbers.\n"}}]}`)
	})

	text, err := client.Complete(context.Background(), ports.CompletionRequest{
		Prompt:      "Document this.\ndef add(a, b): ...",
		Model:       "gpt-4",
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Adds two numbers.", text)
	assert.Equal(t, "openai", client.Name())

	assert.Equal(t, "gpt-4", got.Model)
	assert.InDelta(t, 0.5, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Document this.\ndef add(a, b): ...", got.Messages[0].Content)
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCategory domain.ProviderErrorCategory
		wantMessage  string
		retryable    bool
	}{
		{
			name:         "unauthorized",
			status:       http.StatusUnauthorized,
			body:         `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`,
			wantCategory: domain.CategoryAuth,
			wantMessage:  "invalid api key",
		},
		{
			name:         "rate limited",
			status:       http.StatusTooManyRequests,
			body:         `{"error":{"message":"slow down"}}`,
			wantCategory: domain.CategoryRateLimit,
			wantMessage:  "slow down",
			retryable:    true,
		},
		{
			name:         "server error",
			status:       http.StatusBadGateway,
			body:         `{"error":{"message":"upstream"}}`,
			wantCategory: domain.CategoryServer,
			retryable:    true,
		},
		{
			name:         "bad request",
			status:       http.StatusBadRequest,
			body:         `{"error":{"message":"unknown model"}}`,
			wantCategory: domain.CategoryBadRequest,
			wantMessage:  "unknown model",
		},
		{
			name:         "no choices",
			status:       http.StatusOK,
			body:         `{"choices":[]}`,
			wantCategory: domain.CategoryMalformedResponse,
		},
		{
			name:         "empty content",
			status:       http.StatusOK,
			body:         `{"choices":[{"message":{"content":"   "}}]}`,
			wantCategory: domain.CategoryMalformedResponse,
		},
		{
			name:         "invalid json",
			status:       http.StatusOK,
			body:         `{"choices":`,
			wantCategory: domain.CategoryMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.Complete(context.Background(), ports.CompletionRequest{Prompt: "p", Model: "m"})
			require.Error(t, err)

			pe, ok := domain.AsProviderError(err)
			require.True(t, ok)
			assert.Equal(t, "openai", pe.Provider)
			assert.Equal(t, tt.wantCategory, pe.Category)
			assert.Equal(t, tt.retryable, pe.Retryable())
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, pe.Message)
			}
		})
	}
}

func TestClient_Complete_Canceled(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"choices":[{"message":{"content":"late"}}]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, ports.CompletionRequest{Prompt: "p", Model: "m"})
	require.Error(t, err)
	pe, ok := domain.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryCanceled, pe.Category)
	assert.False(t, pe.Retryable())
}

func TestClient_Complete_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := openai.New(openai.Options{APIKey: "k", BaseURL: url})
	defer client.Close() //nolint:errcheck // test cleanup

	_, err := client.Complete(context.Background(), ports.CompletionRequest{Prompt: "p", Model: "m"})
	require.Error(t, err)
	pe, ok := domain.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryTransport, pe.Category)
	assert.True(t, pe.Retryable())
}

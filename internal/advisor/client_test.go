package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	return Config{
		APIKey:      "test-key",
		Endpoint:    endpoint,
		Model:       "test-model",
		TimeoutMs:   2000,
		MaxRetries:  1,
		Temperature: 0.5,
		MaxTokens:   256,
	}
}

func chatReply(content string) chatResponse {
	var resp chatResponse
	resp.Choices = append(resp.Choices, struct {
		Message Message `json:"message"`
	}{Message: Message{Role: "assistant", Content: content}})
	return resp
}

func TestClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatReply("use refractory mortar"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zerolog.Nop())
	text, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "you are a mason"},
		{Role: "user", Content: "which mortar for a pizza oven?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "use refractory mortar", text)
}

func TestClient_Complete_Disabled(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())
	assert.False(t, client.Enabled())

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestClient_Complete_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(chatReply("second try"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zerolog.Nop())
	text, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "second try", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Complete_RetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zerolog.Nop())
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Complete_BadCredentialsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), zerolog.Nop())
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	assert.ErrorIs(t, err, ErrBadCredentials)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	client := NewClient(cfg, zerolog.Nop())
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Complete_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewClient(cfg, zerolog.Nop())
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	assert.ErrorIs(t, err, ErrUnavailable)
}

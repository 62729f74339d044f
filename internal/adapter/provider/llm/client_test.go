package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(Options{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		Timeout:        timeout,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
		Temperature:    0.7,
		MaxTokens:      1000,
	}, discardLogger())
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":    "cmpl-1",
		"model": "test-model",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	})
	return string(b)
}

func TestClient_Complete_Success(t *testing.T) {
	t.Parallel()

	var got struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var authHeader, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody("hello"))
	}))
	defer srv.Close()

	// Trailing slashes on the base URL are ignored.
	c := newTestClient(srv.URL+"/v1//", time.Second)
	text, err := c.Complete(context.Background(), "write something")

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "test-model", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.001)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "write something", got.Messages[0].Content)
}

func TestClient_Complete_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody("third time"))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL, time.Second).Complete(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "third time", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Complete_TimesOutThreeTimes(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 20*time.Millisecond).Complete(context.Background(), "p")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var uerr *domain.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 3, uerr.Attempts)
	assert.Equal(t, 0, uerr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Complete_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"invalid api key","type":"auth"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).Complete(context.Background(), "p")

	var uerr *domain.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusUnauthorized, uerr.StatusCode)
	assert.Equal(t, "invalid api key", uerr.Body)
	assert.Equal(t, 1, uerr.Attempts)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Complete_ExhaustedKeepsStatusAndBody(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "overloaded")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).Complete(context.Background(), "p")

	var uerr *domain.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusServiceUnavailable, uerr.StatusCode)
	assert.Equal(t, "overloaded", uerr.Body)
	assert.Equal(t, 3, uerr.Attempts)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Complete_EmptyReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"id":"x","choices":[]}`},
		{name: "blank content", body: completionBody("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, time.Second).Complete(context.Background(), "p")
			assert.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}

func TestClient_Complete_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, time.Second).Complete(context.Background(), "p")

	var uerr *domain.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 3, uerr.Attempts)
}

func TestClient_Complete_CallerCancelStopsRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		cancel()
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).Complete(ctx, "p")

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, isRetryable(context.DeadlineExceeded))
	assert.False(t, isRetryable(errors.New("decode")))
}

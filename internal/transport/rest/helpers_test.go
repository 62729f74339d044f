package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordsprint/internal/config"
	"github.com/heartmarshall/wordsprint/internal/service/drill"
	"github.com/heartmarshall/wordsprint/internal/transport/middleware"
	"github.com/heartmarshall/wordsprint/internal/wordlist"
)

type testServer struct {
	handler  http.Handler
	registry *drill.Registry
	articles *articleGeneratorMock
}

type serverOption func(*RouterDeps)

func withArticlesPerMinute(n int) serverOption {
	return func(d *RouterDeps) { d.ArticlePerMinute = n }
}

func withMaxBody(n int64) serverOption {
	return func(d *RouterDeps) {
		d.MaxBodyBytes = n
		d.Words.maxUpload = n
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires the real router, parser and session registry around a
// mocked article generator. Sampling keeps list order.
func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	log := discardLogger()
	registry := drill.NewRegistry(log, drill.RegistryOptions{
		MaxSessions: 100,
		Shuffle:     func(int, func(i, j int)) {},
	})
	limiter := middleware.NewRateLimiter(0)
	t.Cleanup(func() {
		registry.Stop()
		limiter.Stop()
	})

	articles := &articleGeneratorMock{}
	deps := RouterDeps{
		Logger:           log,
		Health:           NewHealthHandler(registry, 100, "test"),
		Words:            NewWordsHandler(wordlist.NewParser(log), 1<<20, log),
		Sessions:         NewSessionHandler(registry, log),
		Articles:         NewArticleHandler(articles, log),
		RateLimiter:      limiter,
		CORS:             config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,DELETE,OPTIONS"},
		ArticlePerMinute: 1000,
		MaxBodyBytes:     1 << 20,
	}
	for _, o := range opts {
		o(&deps)
	}

	return &testServer{handler: NewRouter(deps), registry: registry, articles: articles}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) raw(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func newRawRequest(method, path, contentType, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func wordsPayload(names ...string) []wordDTO {
	out := make([]wordDTO, len(names))
	for i, n := range names {
		out[i] = wordDTO{Word: n, Meaning: n + "-meaning"}
	}
	return out
}

func ptr[T any](v T) *T { return &v }

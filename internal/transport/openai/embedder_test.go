package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

type item struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// provider answers /embeddings with items and the given token count,
// checking the bearer key and decoding the request into got.
func provider(t *testing.T, tokens int, got *openai.EmbeddingRequest, items ...item) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "test-model",
			"data":   items,
			"usage":  usage{PromptTokens: tokens, TotalTokens: tokens},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failing(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestEmbedder(baseURL string) *Embedder {
	return NewEmbedder(&Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Model:      "test-model",
		Dimensions: 4,
		Provider:   "test",
		Logger:     zap.NewNop(),
	})
}

func TestEmbed(t *testing.T) {
	var req openai.EmbeddingRequest
	vec := []float32{0.1, 0.2, 0.3, 0.4}
	srv := provider(t, 10, &req, item{Object: "embedding", Embedding: vec})

	res, err := newTestEmbedder(srv.URL).Embed(context.Background(), "Python Entwickler")
	require.NoError(t, err)
	assert.Equal(t, vec, res.Embedding)
	assert.Equal(t, 10, res.PromptTokens)
	assert.Equal(t, 10, res.TotalTokens)
	assert.Equal(t, 4, req.Dimensions)
	assert.Equal(t, openai.EmbeddingModel("test-model"), req.Model)
}

func TestEmbed_EmptyResponse(t *testing.T) {
	srv := provider(t, 0, nil)

	_, err := newTestEmbedder(srv.URL).Embed(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestBatchEmbed_PlacesByIndex(t *testing.T) {
	srv := provider(t, 20, nil,
		item{Object: "embedding", Embedding: []float32{0.3, 0.4}, Index: 1},
		item{Object: "embedding", Embedding: []float32{0.1, 0.2}, Index: 0},
	)

	res, err := newTestEmbedder(srv.URL).BatchEmbed(context.Background(), []string{"hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}}, res.Embeddings)
	assert.Equal(t, 20, res.TotalTokens)
}

func TestBatchEmbed_EmptyInputSkipsCall(t *testing.T) {
	res, err := newTestEmbedder("http://127.0.0.1:1").BatchEmbed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, res.Embeddings)
}

func TestBatchEmbed_BadResponses(t *testing.T) {
	cases := map[string][]item{
		"count mismatch": {{Embedding: []float32{0.1}}},
		"repeated index": {{Embedding: []float32{0.1}, Index: 0}, {Embedding: []float32{0.2}, Index: 0}},
		"index too big":  {{Embedding: []float32{0.1}, Index: 0}, {Embedding: []float32{0.2}, Index: 5}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			srv := provider(t, 5, nil, items...)
			_, err := newTestEmbedder(srv.URL).BatchEmbed(context.Background(), []string{"a", "b"})
			assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
		})
	}
}

func TestEmbed_APIErrors(t *testing.T) {
	rateLimited := failing(t, http.StatusTooManyRequests,
		`{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`)
	_, err := newTestEmbedder(rateLimited.URL).Embed(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "rate limit exceeded")

	nebius := failing(t, http.StatusNotFound, `{"detail":"model not found"}`)
	_, err = newTestEmbedder(nebius.URL).Embed(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "model not found")
}

func TestEmbed_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(slow.Close)

	e := NewEmbedder(&Config{APIKey: "test-key", BaseURL: slow.URL, Model: "m", Provider: "test", Timeout: 50 * time.Millisecond})
	_, err := e.Embed(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestClassify(t *testing.T) {
	cases := map[string]error{
		"rate_limited": &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests},
		"unauthorized": &openai.APIError{HTTPStatusCode: http.StatusUnauthorized},
		"server_error": &openai.RequestError{HTTPStatusCode: http.StatusBadGateway},
		"api_error":    &openai.RequestError{HTTPStatusCode: http.StatusBadRequest},
		"transport":    errors.New("dial tcp: connection refused"),
	}
	for want, err := range cases {
		assert.Equal(t, want, classify(err), err.Error())
	}
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "model not found", detail([]byte(`{"detail":"model not found"}`)))
	assert.Empty(t, detail([]byte(`not json`)))
}

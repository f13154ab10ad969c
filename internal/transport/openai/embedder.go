// Package openai talks to any embedding endpoint that speaks the OpenAI
// /embeddings API: OpenAI itself, Nebius, or a local inference server.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/metrics"
)

// Config holds the provider settings.
type Config struct {
	APIKey     string
	BaseURL    string // empty means api.openai.com
	Model      string
	Dimensions int // 0 keeps the model's native size
	User       string
	Provider   string        // metrics label
	Timeout    time.Duration // per HTTP call; 0 means no client-side timeout
	Logger     *zap.Logger
}

// Embedder is the provider at the bottom of the embedder chain. Every failure
// it returns wraps domain.ErrProviderUnavailable.
type Embedder struct {
	client *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewEmbedder builds a client for cfg.
func NewEmbedder(cfg *Config) *Embedder {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{
		client: openai.NewClientWithConfig(cc),
		cfg:    *cfg,
		logger: logger.With(zap.String("provider", cfg.Provider)),
	}
}

// Embed vectorizes one text.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	res, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{
		Embedding:    res.Embeddings[0],
		PromptTokens: res.PromptTokens,
		TotalTokens:  res.TotalTokens,
	}, nil
}

// BatchEmbed vectorizes texts in one request. Items are placed by their
// response index, which the provider may return out of order.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          openai.EmbeddingModel(e.cfg.Model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		User:           e.cfg.User,
		Dimensions:     e.cfg.Dimensions,
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		kind := classify(err)
		e.count(kind)
		e.logger.Debug("Embedding API call failed",
			zap.String("kind", kind),
			zap.Int("inputs", len(texts)),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return domain.BatchEmbeddingResult{}, describe(err)
	}

	out, err := order(resp.Data, len(texts))
	if err != nil {
		e.count("bad_response")
		return domain.BatchEmbeddingResult{}, err
	}

	e.count("ok")
	metrics.EmbeddingLatency.WithLabelValues(e.cfg.Provider, e.cfg.Model).Observe(elapsed.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.EmbeddingTokens.WithLabelValues(e.cfg.Provider, e.cfg.Model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.EmbeddingTokens.WithLabelValues(e.cfg.Provider, e.cfg.Model, "total").Add(float64(resp.Usage.TotalTokens))
	}
	return domain.BatchEmbeddingResult{
		Embeddings:   out,
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

// HealthCheck lists models, which costs no tokens.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w: %w", domain.ErrProviderUnavailable, err)
	}
	return nil
}

func (e *Embedder) count(outcome string) {
	metrics.EmbeddingCalls.WithLabelValues(e.cfg.Provider, e.cfg.Model, outcome).Inc()
}

// order places every item at its index and requires exactly one item per input.
func order(data []openai.Embedding, n int) ([][]float32, error) {
	if len(data) != n {
		return nil, fmt.Errorf("embedding response has %d items for %d inputs: %w",
			len(data), n, domain.ErrProviderUnavailable)
	}
	out := make([][]float32, n)
	for _, d := range data {
		if d.Index < 0 || d.Index >= n || out[d.Index] != nil {
			return nil, fmt.Errorf("embedding response has invalid or repeated index %d: %w",
				d.Index, domain.ErrProviderUnavailable)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// classify maps an API error to a metrics outcome.
func classify(err error) string {
	status := 0
	var reqErr *openai.RequestError
	var apiErr *openai.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return "transport"
	}
	switch {
	case status == http.StatusTooManyRequests:
		return "rate_limited"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "unauthorized"
	case status >= http.StatusInternalServerError:
		return "server_error"
	default:
		return "api_error"
	}
}

// describe turns an API error into a readable one wrapping ErrProviderUnavailable.
func describe(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, domain.ErrProviderUnavailable)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := detail(reqErr.Body)
		if msg == "" {
			msg = string(reqErr.Body)
		}
		return fmt.Errorf("embedding API error %d: %s: %w", reqErr.HTTPStatusCode, msg, domain.ErrProviderUnavailable)
	}
	return fmt.Errorf("embedding request failed: %w: %w", domain.ErrProviderUnavailable, err)
}

// detail reads the {"detail": "..."} error body some providers send.
func detail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	return parsed.Detail
}

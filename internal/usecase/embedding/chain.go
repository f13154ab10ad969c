package embedding

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// ChainConfig describes the decorator chain around a provider embedder.
type ChainConfig struct {
	Provider string
	Model    string
	// Instruction is prepended to every text (e.g. "query: " for E5 models).
	Instruction string
	// ChunkSize bounds texts per provider call; <= 0 means DefaultMaxAPIBatchSize.
	ChunkSize int
	// Workers > 0 fans batches out over a worker pool of that size.
	Workers int
	// Cache wraps the embedder with a cache layer; nil disables caching.
	Cache  func(domain.Embedder) domain.Embedder
	Logger *zap.Logger
}

// Chain is an assembled embedder plus the resources it owns.
type Chain struct {
	domain.Embedder
	pool *PooledEmbedder
}

// BatchEmbed forwards to the outermost decorator, which always supports batching.
func (c *Chain) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	return domain.Batch(ctx, c.Embedder, texts) //nolint:wrapcheck // transparent decorator
}

// HealthCheck forwards to the chain.
func (c *Chain) HealthCheck(ctx context.Context) error {
	if hc, ok := c.Embedder.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

// Close releases the worker pool, if any.
func (c *Chain) Close() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// BuildChain assembles: base -> Pooled -> Cached -> Instrumented -> Instruction.
// The instruction is outermost so the cache key includes it.
func BuildChain(base domain.Embedder, cfg ChainConfig) (*Chain, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Chain{}
	embedder := base

	if cfg.Workers > 0 {
		pool, err := NewPooledEmbedder(embedder, cfg.Workers)
		if err != nil {
			return nil, err
		}
		c.pool = pool
		embedder = pool
	}

	if cfg.Cache != nil {
		embedder = cfg.Cache(embedder)
	}

	embedder = NewInstrumentedEmbedder(embedder, cfg.Provider, cfg.Model, cfg.ChunkSize, logger)

	if cfg.Instruction != "" {
		embedder = NewInstructionEmbedder(embedder, cfg.Instruction)
	}

	c.Embedder = embedder
	return c, nil
}

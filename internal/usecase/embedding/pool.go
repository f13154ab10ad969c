package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// PooledEmbedder fans batch requests out as concurrent single Embed calls on
// a bounded worker pool, for providers without a native batch endpoint.
// Results are written back by index.
type PooledEmbedder struct {
	inner domain.Embedder
	pool  *ants.Pool
}

// NewPooledEmbedder creates a pooled embedder with size workers.
func NewPooledEmbedder(inner domain.Embedder, size int) (*PooledEmbedder, error) {
	if size <= 0 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create embedding pool: %w", err)
	}
	return &PooledEmbedder{inner: inner, pool: pool}, nil
}

// Embed delegates to the inner embedder.
func (p *PooledEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	return p.inner.Embed(ctx, text) //nolint:wrapcheck // transparent decorator
}

// BatchEmbed embeds every text on the pool. The first failure is returned.
func (p *PooledEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]domain.EmbeddingResult, len(texts))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for i, text := range texts {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		i, text := i, text
		if err := p.pool.Submit(func() {
			defer wg.Done()
			res, err := p.inner.Embed(ctx, text)
			if err != nil {
				fail(fmt.Errorf("pooled embed [%d]: %w", i, err))
				return
			}
			results[i] = res
		}); err != nil {
			wg.Done()
			fail(fmt.Errorf("submit embed [%d]: %w", i, err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return domain.BatchEmbeddingResult{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("pooled embed: %w", err)
	}

	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	for i, r := range results {
		out.Embeddings[i] = r.Embedding
		out.PromptTokens += r.PromptTokens
		out.TotalTokens += r.TotalTokens
	}
	return out, nil
}

// HealthCheck forwards to the inner embedder when it supports health checks.
func (p *PooledEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

// Release stops the worker pool.
func (p *PooledEmbedder) Release() {
	p.pool.Release()
}

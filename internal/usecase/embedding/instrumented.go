package embedding

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/metrics"
)

// DefaultMaxAPIBatchSize is the maximum number of texts per provider call.
const DefaultMaxAPIBatchSize = 256

// InstrumentedEmbedder sits at the top of the chain. It splits large batches
// into provider-sized chunks, logs every call, feeds the per-request usage
// tally and pins the vector dimension: once a dimension is seen, a vector of
// any other length fails with ErrProviderUnavailable.
type InstrumentedEmbedder struct {
	inner     domain.Embedder
	provider  string
	model     string
	chunkSize int
	dim       atomic.Int64
	logger    *zap.Logger
}

// NewInstrumentedEmbedder wraps inner. chunkSize <= 0 means DefaultMaxAPIBatchSize.
func NewInstrumentedEmbedder(
	inner domain.Embedder, provider, model string, chunkSize int, logger *zap.Logger,
) *InstrumentedEmbedder {
	if chunkSize <= 0 {
		chunkSize = DefaultMaxAPIBatchSize
	}
	return &InstrumentedEmbedder{
		inner:     inner,
		provider:  provider,
		model:     model,
		chunkSize: chunkSize,
		logger:    logger.With(zap.String("provider", provider), zap.String("model", model)),
	}
}

// Embed vectorizes a single text.
func (p *InstrumentedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()
	res, err := p.inner.Embed(ctx, text)
	if err == nil {
		err = p.pin(res.Embedding)
	}
	if err != nil {
		p.logger.Error("Embedding failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	domain.UsageFromContext(ctx).Record(res.PromptTokens, res.TotalTokens)
	p.logger.Debug("Embedded text",
		zap.Duration("duration", time.Since(start)),
		zap.Int("dimensions", len(res.Embedding)),
		zap.Int("total_tokens", res.TotalTokens),
	)
	return res, nil
}

// BatchEmbed vectorizes texts in chunks of at most chunkSize.
func (p *InstrumentedEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}
	start := time.Now()
	metrics.EmbeddingBatchSize.WithLabelValues(p.provider, p.model).Observe(float64(len(texts)))

	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, 0, len(texts))}
	offset := 0
	for chunk := range slices.Chunk(texts, p.chunkSize) {
		res, err := p.embedChunk(ctx, chunk)
		if err != nil {
			p.logger.Error("Batch embedding failed",
				zap.Int("chunk_offset", offset),
				zap.Int("chunk_size", len(chunk)),
				zap.Error(err),
			)
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed [%d:%d]: %w", offset, offset+len(chunk), err)
		}
		out.Embeddings = append(out.Embeddings, res.Embeddings...)
		out.PromptTokens += res.PromptTokens
		out.TotalTokens += res.TotalTokens
		offset += len(chunk)
	}

	domain.UsageFromContext(ctx).Record(out.PromptTokens, out.TotalTokens)
	p.logger.Debug("Embedded batch",
		zap.Duration("duration", time.Since(start)),
		zap.Int("texts", len(texts)),
		zap.Int("total_tokens", out.TotalTokens),
	)
	return out, nil
}

// HealthCheck forwards to the inner embedder when it supports health checks.
func (p *InstrumentedEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func (p *InstrumentedEmbedder) embedChunk(ctx context.Context, chunk []string) (domain.BatchEmbeddingResult, error) {
	res, err := domain.Batch(ctx, p.inner, chunk)
	if err != nil {
		return res, err //nolint:wrapcheck // wrapped by BatchEmbed with the chunk range
	}
	if len(res.Embeddings) != len(chunk) {
		return res, fmt.Errorf("got %d vectors for %d texts: %w",
			len(res.Embeddings), len(chunk), domain.ErrProviderUnavailable)
	}
	for _, v := range res.Embeddings {
		if err := p.pin(v); err != nil {
			return res, err
		}
	}
	return res, nil
}

// pin records the first non-empty dimension and rejects vectors of any other length.
func (p *InstrumentedEmbedder) pin(v []float32) error {
	n := int64(len(v))
	if n == 0 {
		return fmt.Errorf("empty vector: %w", domain.ErrProviderUnavailable)
	}
	if p.dim.CompareAndSwap(0, n) {
		return nil
	}
	if want := p.dim.Load(); want != n {
		return fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, domain.NewDimensionMismatch(int(want), int(n)))
	}
	return nil
}

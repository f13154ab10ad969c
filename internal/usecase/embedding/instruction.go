package embedding

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// InstructionEmbedder prefixes every text with a model instruction such as
// "query: " or "passage: " before it reaches the inner embedder.
type InstructionEmbedder struct {
	inner  domain.Embedder
	prefix string
}

// NewInstructionEmbedder wraps inner with prefix.
func NewInstructionEmbedder(inner domain.Embedder, prefix string) *InstructionEmbedder {
	return &InstructionEmbedder{inner: inner, prefix: prefix}
}

// Embed embeds prefix+text.
func (e *InstructionEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	res, err := e.inner.Embed(ctx, e.prefix+text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("instruction embed: %w", err)
	}
	return res, nil
}

// BatchEmbed embeds every text with the prefix applied.
func (e *InstructionEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	prefixed := make([]string, len(texts))
	for i, t := range texts {
		prefixed[i] = e.prefix + t
	}
	res, err := domain.Batch(ctx, e.inner, prefixed)
	if err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("instruction batch embed: %w", err)
	}
	return res, nil
}

// HealthCheck forwards to the inner embedder when it supports health checks.
func (e *InstructionEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := e.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

package modmatch

import (
	"context"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// Embedder turns text into a dense vector. Every vector one Embedder returns
// must have the same dimension. Pass one with WithEmbedder to use a provider
// other than the built-in OpenAI-compatible client.
type Embedder = domain.Embedder

// BatchEmbedder is optionally implemented by an Embedder that can vectorize
// several texts per provider call. Embeddings[i] must belong to texts[i].
// Embedders without it are called once per text.
type BatchEmbedder = domain.BatchEmbedder

// EmbeddingResult is one vector plus the tokens the provider billed for it.
type EmbeddingResult = domain.EmbeddingResult

// BatchEmbeddingResult is the vectors of one batch call plus aggregate tokens.
type BatchEmbeddingResult = domain.BatchEmbeddingResult

// EmbedderFunc adapts a plain function to Embedder. Token counts are reported as zero.
type EmbedderFunc func(ctx context.Context, text string) ([]float32, error)

// Embed calls f.
func (f EmbedderFunc) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	vec, err := f(ctx, text)
	if err != nil {
		return EmbeddingResult{}, err
	}
	return EmbeddingResult{Embedding: vec}, nil
}

package domain

import (
	"context"
	"fmt"
)

// Embedder maps text to a dense vector. All vectors from one Embedder share a dimension.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// BatchEmbedder is implemented by embedders with a native multi-text call.
// Embeddings[i] of the result belongs to texts[i].
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// HealthChecker reports embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult is one vector and the tokens billed for it. Cache hits bill zero.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// BatchEmbeddingResult is the vectors of one batch call and their summed tokens.
type BatchEmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// Batch embeds texts with e's native batch call when it has one, else via BatchFallback.
func Batch(ctx context.Context, e Embedder, texts []string) (BatchEmbeddingResult, error) {
	if be, ok := e.(BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts) //nolint:wrapcheck // callers add context
	}
	return BatchFallback(ctx, e, texts)
}

// BatchFallback embeds texts one Embed call at a time and sums the tokens.
func BatchFallback(ctx context.Context, e Embedder, texts []string) (BatchEmbeddingResult, error) {
	out := BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	for i, text := range texts {
		res, err := e.Embed(ctx, text)
		if err != nil {
			return BatchEmbeddingResult{}, fmt.Errorf("embed text %d of %d: %w", i+1, len(texts), err)
		}
		out.Embeddings[i] = res.Embedding
		out.PromptTokens += res.PromptTokens
		out.TotalTokens += res.TotalTokens
	}
	return out, nil
}

// EmbedAll returns one vector per text, in order. Repeated texts are sent to
// the provider once; a response with the wrong number of vectors is
// ErrProviderUnavailable.
func EmbedAll(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var unique []string
	pos := make(map[string]int, len(texts))
	for _, t := range texts {
		if _, seen := pos[t]; !seen {
			pos[t] = len(unique)
			unique = append(unique, t)
		}
	}

	res, err := Batch(ctx, e, unique)
	if err != nil {
		return nil, fmt.Errorf("embed %d texts: %w", len(unique), err)
	}
	if len(res.Embeddings) != len(unique) {
		return nil, fmt.Errorf("embed %d texts: provider returned %d vectors: %w",
			len(unique), len(res.Embeddings), ErrProviderUnavailable)
	}

	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = res.Embeddings[pos[t]]
	}
	return vecs, nil
}

package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

type recordingEmbedder struct {
	texts []string
}

func (r *recordingEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	r.texts = append(r.texts, text)
	return domain.EmbeddingResult{Embedding: []float32{1, 2}}, nil
}

type countingCache struct {
	inner domain.Embedder
	calls int
}

func (c *countingCache) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	c.calls++
	return c.inner.Embed(ctx, text) //nolint:wrapcheck // test decorator
}

func TestBuildChain_Minimal(t *testing.T) {
	base := &recordingEmbedder{}
	c, err := BuildChain(base, ChainConfig{Provider: "test", Model: "m"})
	require.NoError(t, err)
	defer c.Close()

	require.IsType(t, &InstrumentedEmbedder{}, c.Embedder, "expected instrumented outermost")
	_, err = c.Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, base.texts)
	assert.Nil(t, c.pool)
}

func TestBuildChain_InstructionOutermostAndCached(t *testing.T) {
	base := &recordingEmbedder{}
	var cache *countingCache
	c, err := BuildChain(base, ChainConfig{
		Provider:    "test",
		Model:       "m",
		Instruction: "query: ",
		Workers:     2,
		Cache: func(inner domain.Embedder) domain.Embedder {
			cache = &countingCache{inner: inner}
			return cache
		},
	})
	require.NoError(t, err)
	defer c.Close()

	vecs, err := domain.EmbedAll(context.Background(), c, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vecs, 2)
	require.NotNil(t, cache)
	assert.Equal(t, 2, cache.calls, "cache should see both texts")
	assert.ElementsMatch(t, []string{"query: a", "query: b"}, base.texts, "instruction applied before provider")
	assert.NotNil(t, c.pool, "expected worker pool")
}

package embedding

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// lengthEmbedder returns a one-element vector holding the text length.
type lengthEmbedder struct {
	calls atomic.Int32
	fail  string
}

func (e *lengthEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	e.calls.Add(1)
	if text == e.fail {
		return domain.EmbeddingResult{}, domain.ErrProviderUnavailable
	}
	return domain.EmbeddingResult{Embedding: []float32{float32(len(text))}, TotalTokens: 1}, nil
}

func newPool(t *testing.T, inner domain.Embedder, workers int) *PooledEmbedder {
	t.Helper()
	p, err := NewPooledEmbedder(inner, workers)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func TestPooledEmbedder_KeepsOrder(t *testing.T) {
	inner := &lengthEmbedder{}
	p := newPool(t, inner, 4)

	texts := []string{"a", "bbbb", "cc", "ddddddd", "eee", "ffffff"}
	res, err := p.BatchEmbed(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, res.Embeddings, len(texts))
	for i, text := range texts {
		assert.Equal(t, []float32{float32(len(text))}, res.Embeddings[i], "embedding %d", i)
	}
	assert.Equal(t, len(texts), res.TotalTokens)
	assert.Equal(t, int32(len(texts)), inner.calls.Load())
}

func TestPooledEmbedder_Error(t *testing.T) {
	p := newPool(t, &lengthEmbedder{fail: "bad"}, 2)

	_, err := p.BatchEmbed(context.Background(), []string{"ok", "bad", "fine"})
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestPooledEmbedder_Empty(t *testing.T) {
	p := newPool(t, &lengthEmbedder{}, 0)

	res, err := p.BatchEmbed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, res.Embeddings)
}

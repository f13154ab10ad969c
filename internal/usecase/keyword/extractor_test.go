package keyword

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// axisEmbedder maps every known word to a fixed vector; the full text maps to docVec.
type axisEmbedder struct {
	words  map[string][]float32
	docVec []float32
	batch  [][]string
}

func (e *axisEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	if v, ok := e.words[text]; ok {
		return domain.EmbeddingResult{Embedding: v}, nil
	}
	return domain.EmbeddingResult{Embedding: e.docVec}, nil
}

func (e *axisEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	e.batch = append(e.batch, texts)
	return domain.BatchFallback(ctx, e, texts)
}

func TestCandidates(t *testing.T) {
	stop := map[string]struct{}{"und": {}}
	got := Candidates("Python und SQL, python! x Docker", stop)
	assert.Equal(t, []string{"docker", "python", "sql"}, got)
}

func TestEmbeddingExtractor_RanksByCosine(t *testing.T) {
	emb := &axisEmbedder{
		words: map[string][]float32{
			"python": {1, 0},
			"sql":    {0.6, 0.8},
			"docker": {0, 1},
		},
		docVec: []float32{1, 0.1},
	}
	ex := NewEmbeddingExtractor(emb)

	got, err := ex.Extract(context.Background(), "Python SQL Docker", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "sql"}, got)
	require.Len(t, emb.batch, 1)
	assert.Len(t, emb.batch[0], 4)
}

func TestEmbeddingExtractor_NoCandidates(t *testing.T) {
	emb := &axisEmbedder{}
	got, err := NewEmbeddingExtractor(emb).Extract(context.Background(), "und", 3, map[string]struct{}{"und": {}})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, emb.batch)
}

package similarity

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// Dense scores by cosine similarity of provider embeddings.
type Dense struct {
	embedder domain.Embedder
}

// NewDense creates a dense scorer over embedder.
func NewDense(embedder domain.Embedder) *Dense {
	return &Dense{embedder: embedder}
}

// Score implements Scorer. The query and all non-empty docs are embedded in one batch;
// an empty query or doc scores 0 without reaching the provider.
func (d *Dense) Score(ctx context.Context, query string, docs []string) ([]float64, error) {
	out := make([]float64, len(docs))
	if len(docs) == 0 || strings.TrimSpace(query) == "" {
		return out, nil
	}

	texts := make([]string, 0, len(docs)+1)
	texts = append(texts, query)
	idx := make([]int, len(docs))
	for i, doc := range docs {
		idx[i] = -1
		if strings.TrimSpace(doc) != "" {
			idx[i] = len(texts)
			texts = append(texts, doc)
		}
	}
	if len(texts) == 1 {
		return out, nil
	}

	vecs, err := domain.EmbedAll(ctx, d.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("dense score: %w", err)
	}

	for i, j := range idx {
		if j < 0 {
			continue
		}
		s, err := Cosine(vecs[0], vecs[j])
		if err != nil {
			return nil, fmt.Errorf("dense score doc %d: %w", i, err)
		}
		out[i] = Round4(s)
	}
	return out, nil
}

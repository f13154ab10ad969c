package similarity

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// BatchScorer scores many queries against the same docs in one pass.
// Result [i][j] is the score of queries[i] against docs[j].
type BatchScorer interface {
	ScoreMany(ctx context.Context, queries, docs []string) ([][]float64, error)
}

// ScoreAll uses s.ScoreMany when available and falls back to one Score call per query.
func ScoreAll(ctx context.Context, s Scorer, queries, docs []string) ([][]float64, error) {
	if bs, ok := s.(BatchScorer); ok {
		return bs.ScoreMany(ctx, queries, docs) //nolint:wrapcheck // transparent dispatch
	}
	out := make([][]float64, len(queries))
	for i, q := range queries {
		row, err := s.Score(ctx, q, docs)
		if err != nil {
			return nil, fmt.Errorf("score query %d: %w", i, err)
		}
		out[i] = row
	}
	return out, nil
}

// ScoreMany implements BatchScorer: queries and docs are embedded in a single batch.
func (d *Dense) ScoreMany(ctx context.Context, queries, docs []string) ([][]float64, error) {
	out := make([][]float64, len(queries))
	for i := range out {
		out[i] = make([]float64, len(docs))
	}
	if len(queries) == 0 || len(docs) == 0 {
		return out, nil
	}

	var texts []string
	slot := func(s string) int {
		if strings.TrimSpace(s) == "" {
			return -1
		}
		texts = append(texts, s)
		return len(texts) - 1
	}
	qIdx := make([]int, len(queries))
	for i, q := range queries {
		qIdx[i] = slot(q)
	}
	dIdx := make([]int, len(docs))
	for j, doc := range docs {
		dIdx[j] = slot(doc)
	}
	if len(texts) == 0 {
		return out, nil
	}

	vecs, err := domain.EmbedAll(ctx, d.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("dense score many: %w", err)
	}

	for i, qi := range qIdx {
		if qi < 0 {
			continue
		}
		for j, dj := range dIdx {
			if dj < 0 {
				continue
			}
			s, err := Cosine(vecs[qi], vecs[dj])
			if err != nil {
				return nil, fmt.Errorf("dense score query %d doc %d: %w", i, j, err)
			}
			out[i][j] = Round4(s)
		}
	}
	return out, nil
}

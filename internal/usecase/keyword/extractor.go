package keyword

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/similarity"
)

var candidatePattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// EmbeddingExtractor ranks single-word candidates by the cosine similarity of their
// embedding to the embedding of the whole text.
type EmbeddingExtractor struct {
	embedder domain.Embedder
}

// NewEmbeddingExtractor creates an extractor over embedder.
func NewEmbeddingExtractor(embedder domain.Embedder) *EmbeddingExtractor {
	return &EmbeddingExtractor{embedder: embedder}
}

// Extract implements domain.KeywordExtractor. Keywords are lowercase.
func (e *EmbeddingExtractor) Extract(
	ctx context.Context, text string, topN int, stopWords map[string]struct{},
) ([]string, error) {
	cands := Candidates(text, stopWords)
	if len(cands) == 0 || topN <= 0 {
		return []string{}, nil
	}

	texts := make([]string, 0, len(cands)+1)
	texts = append(texts, text)
	texts = append(texts, cands...)
	vecs, err := domain.EmbedAll(ctx, e.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}

	type scored struct {
		word  string
		score float64
	}
	ranked := make([]scored, len(cands))
	for i, c := range cands {
		s, err := similarity.Cosine(vecs[0], vecs[i+1])
		if err != nil {
			return nil, fmt.Errorf("extract keywords: %w", err)
		}
		ranked[i] = scored{word: c, score: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.word
	}
	return out, nil
}

// Candidates returns the distinct lowercase words of text outside stopWords, sorted.
func Candidates(text string, stopWords map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range candidatePattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

package modmatch

import (
	"context"
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain/backend"
	"github.com/kailas-cloud/modmatch/internal/domain/catalog"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
	"github.com/kailas-cloud/modmatch/internal/domain/query"
	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
	"github.com/kailas-cloud/modmatch/internal/domain/relevance"
	"github.com/kailas-cloud/modmatch/internal/textnorm"
	keyworduc "github.com/kailas-cloud/modmatch/internal/usecase/keyword"
	matchuc "github.com/kailas-cloud/modmatch/internal/usecase/match"
)

// --- matchUseCase mock ---

type mockMatchUC struct {
	singleFn  func(ctx context.Context, q query.Query, cat catalog.Catalog, b backend.Backend, limit int) ([]*recommendation.Recommendation, error)
	multiFn   func(ctx context.Context, sources []query.Source, cat catalog.Catalog, b backend.Backend) ([]*recommendation.Recommendation, error)
	vectorsFn func(ctx context.Context, sources, items []recommendation.LabeledVector) ([]*recommendation.Recommendation, error)
	topicsFn  func(ctx context.Context, topics []matchuc.Topic) ([]matchuc.TopicEmbedding, error)
}

func (m *mockMatchUC) MatchSingleQuery(
	ctx context.Context, q query.Query, cat catalog.Catalog, b backend.Backend, limit int,
) ([]*recommendation.Recommendation, error) {
	return m.singleFn(ctx, q, cat, b, limit)
}

func (m *mockMatchUC) MatchMultiSource(
	ctx context.Context, sources []query.Source, cat catalog.Catalog, b backend.Backend,
) ([]*recommendation.Recommendation, error) {
	return m.multiFn(ctx, sources, cat, b)
}

func (m *mockMatchUC) MatchPrecomputedVectors(
	ctx context.Context, sources, items []recommendation.LabeledVector,
) ([]*recommendation.Recommendation, error) {
	return m.vectorsFn(ctx, sources, items)
}

func (m *mockMatchUC) EmbedTopics(ctx context.Context, topics []matchuc.Topic) ([]matchuc.TopicEmbedding, error) {
	return m.topicsFn(ctx, topics)
}

// --- keywordUseCase mock ---

type mockKeywordUC struct {
	extractFn func(ctx context.Context, title, description string, topN int) (keyworduc.Keywords, error)
}

func (m *mockKeywordUC) ExtractJobKeywords(
	ctx context.Context, title, description string, topN int,
) (keyworduc.Keywords, error) {
	return m.extractFn(ctx, title, description, topN)
}

// --- sectionClassifier mock ---

type mockSections struct {
	gotMode relevance.Mode
}

func (m *mockSections) EvaluateSection(text string, mode relevance.Mode) string {
	m.gotMode = mode
	return strings.ToUpper(text)
}

// --- normalizer stub ---

type stubNormalizer struct{}

func (stubNormalizer) Normalize(text string, lang language.Language) textnorm.Normalized {
	p, err := textnorm.New(textnorm.WithLemmatizerKind(LemmatizerIdentity))
	if err != nil {
		panic(err)
	}
	return p.Normalize(text, lang)
}

// --- public Embedder mocks ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

type mockBatchEmbedder struct {
	mockEmbedder
	batchCalls int
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error) {
	m.batchCalls++
	out := BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	for i, t := range texts {
		r, err := m.fn(ctx, t)
		if err != nil {
			return BatchEmbeddingResult{}, err
		}
		out.Embeddings[i] = r.Embedding
		out.TotalTokens += r.TotalTokens
	}
	return out, nil
}

// topicEmbedder maps every text mentioning python to one axis and everything
// else to the other.
func topicEmbedder() *mockEmbedder {
	return &mockEmbedder{fn: func(_ context.Context, text string) (EmbeddingResult, error) {
		if strings.Contains(strings.ToLower(text), "python") {
			return EmbeddingResult{Embedding: []float32{1, 0}, TotalTokens: 1}, nil
		}
		return EmbeddingResult{Embedding: []float32{0, 1}, TotalTokens: 1}, nil
	}}
}

func rec(itemID string, scores map[string]float64) *recommendation.Recommendation {
	r := recommendation.New(itemID)
	for src, s := range scores {
		r.AddSource(recommendation.SourceScore{SourceID: src, Score: s})
	}
	return r
}

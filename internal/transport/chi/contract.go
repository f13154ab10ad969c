package chi

import (
	"context"

	"github.com/kailas-cloud/modmatch/internal/domain/backend"
	"github.com/kailas-cloud/modmatch/internal/domain/catalog"
	"github.com/kailas-cloud/modmatch/internal/domain/query"
	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
	"github.com/kailas-cloud/modmatch/internal/domain/relevance"
	healthuc "github.com/kailas-cloud/modmatch/internal/usecase/health"
	keyworduc "github.com/kailas-cloud/modmatch/internal/usecase/keyword"
	matchuc "github.com/kailas-cloud/modmatch/internal/usecase/match"
)

// Matcher runs the matching workflows.
type Matcher interface {
	MatchSingleQuery(
		ctx context.Context, q query.Query, cat catalog.Catalog, b backend.Backend, limit int,
	) ([]*recommendation.Recommendation, error)
	MatchMultiSource(
		ctx context.Context, sources []query.Source, cat catalog.Catalog, b backend.Backend,
	) ([]*recommendation.Recommendation, error)
	MatchPrecomputedVectors(
		ctx context.Context, sources, items []recommendation.LabeledVector,
	) ([]*recommendation.Recommendation, error)
	EmbedTopics(ctx context.Context, topics []matchuc.Topic) ([]matchuc.TopicEmbedding, error)
}

// SectionClassifier filters job-posting text by relevance.
type SectionClassifier interface {
	EvaluateSection(text string, mode relevance.Mode) string
}

// KeywordExtractor runs the job keyword workflow.
type KeywordExtractor interface {
	ExtractJobKeywords(ctx context.Context, title, description string, topN int) (keyworduc.Keywords, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Package match runs the single-query, multi-source and precomputed-vector
// matching workflows over a catalog.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/backend"
	"github.com/kailas-cloud/modmatch/internal/domain/catalog"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
	"github.com/kailas-cloud/modmatch/internal/domain/query"
	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
	"github.com/kailas-cloud/modmatch/internal/logger"
	"github.com/kailas-cloud/modmatch/internal/metrics"
	"github.com/kailas-cloud/modmatch/internal/similarity"
)

// Defaults for Config fields left at zero.
const (
	DefaultSingleLimit    = 5
	DefaultPerSourceLimit = 3
	DefaultOverallLimit   = 3
)

// SingleSourceID labels the triples of a single-query match.
const SingleSourceID = "query"

// Workflow labels for metrics and logs.
const (
	workflowSingle      = "single"
	workflowMultiSource = "multi_source"
	workflowVectors     = "precomputed"
)

// Config tunes the workflows.
type Config struct {
	SingleLimit    int
	PerSourceLimit int
	OverallLimit   int
	// MultiSourceBackend is used when MatchMultiSource gets an empty backend.
	MultiSourceBackend backend.Backend
	// Layout is the catalog composite field order; nil means catalog.DefaultLayout.
	Layout []string
}

func (c *Config) applyDefaults() {
	if c.SingleLimit <= 0 {
		c.SingleLimit = DefaultSingleLimit
	}
	if c.PerSourceLimit <= 0 {
		c.PerSourceLimit = DefaultPerSourceLimit
	}
	if c.OverallLimit <= 0 {
		c.OverallLimit = DefaultOverallLimit
	}
	if c.MultiSourceBackend == "" {
		c.MultiSourceBackend = backend.Dense
	}
}

// Service orchestrates normalization, scoring and aggregation. Stateless per request.
type Service struct {
	norm     Normalizer
	embedder domain.Embedder
	scorers  ScorerFactory
	cfg      Config
}

// New creates a match service. embedder may be nil when only the lexical backend is used.
func New(norm Normalizer, embedder domain.Embedder, cfg Config) *Service {
	cfg.applyDefaults()
	return &Service{norm: norm, embedder: embedder, scorers: similarity.New, cfg: cfg}
}

// WithScorerFactory overrides how scorers are built.
func (s *Service) WithScorerFactory(f ScorerFactory) *Service {
	s.scorers = f
	return s
}

// MatchSingleQuery scores one query against the catalog. Items scoring <= 0 are
// dropped; the rest are returned score descending, truncated to limit
// (<= 0 means the configured default).
func (s *Service) MatchSingleQuery(
	ctx context.Context, q query.Query, cat catalog.Catalog, b backend.Backend, limit int,
) (_ []*recommendation.Recommendation, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, workflowSingle, b, start, err) }()

	if limit <= 0 {
		limit = s.cfg.SingleLimit
	}

	scorer, err := s.scorer(ctx, b)
	if err != nil {
		return nil, err
	}
	if cat.Len() == 0 {
		return []*recommendation.Recommendation{}, nil
	}

	text := s.queryText(q)
	if text == "" {
		return []*recommendation.Recommendation{}, nil
	}

	items := cat.Items()
	scores, err := scorer.Score(ctx, text, s.composites(cat, q.Language()))
	if err != nil {
		return nil, fmt.Errorf("score query: %w", err)
	}

	triples := make([]recommendation.Triple, len(items))
	for i := range items {
		triples[i] = recommendation.Triple{SourceID: SingleSourceID, ItemID: items[i].ID(), Score: scores[i]}
	}

	agg := NewAggregator()
	agg.AddAll(TopPerSource(PositiveOnly(triples), limit))
	out := agg.Ranked(limit)
	metrics.MatchRecommendations.WithLabelValues(workflowSingle).Observe(float64(len(out)))
	return out, nil
}

// MatchMultiSource keeps the top PerSourceLimit items of every source, merges them
// by item and returns the OverallLimit best by frequency then mean score.
// An empty backend means the configured multi-source default.
func (s *Service) MatchMultiSource(
	ctx context.Context, sources []query.Source, cat catalog.Catalog, b backend.Backend,
) (_ []*recommendation.Recommendation, err error) {
	if b == "" {
		b = s.cfg.MultiSourceBackend
	}
	start := time.Now()
	defer func() { s.observe(ctx, workflowMultiSource, b, start, err) }()

	if err = uniqueSourceIDs(sources); err != nil {
		return nil, err
	}
	scorer, err := s.scorer(ctx, b)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 || cat.Len() == 0 {
		return []*recommendation.Recommendation{}, nil
	}

	queries := make([]string, len(sources))
	for i := range sources {
		queries[i] = s.queryText(sources[i].Query())
	}
	items := cat.Items()
	docs := s.composites(cat, language.Auto)

	matrix, err := similarity.ScoreAll(ctx, scorer, queries, docs)
	if err != nil {
		return nil, fmt.Errorf("score sources: %w", err)
	}

	agg := NewAggregator()
	for i := range sources {
		triples := make([]recommendation.Triple, len(items))
		for j := range items {
			triples[j] = recommendation.Triple{SourceID: sources[i].ID(), ItemID: items[j].ID(), Score: matrix[i][j]}
		}
		agg.AddAll(TopPerSource(PositiveOnly(triples), s.cfg.PerSourceLimit))
	}

	out := agg.Ranked(s.cfg.OverallLimit)
	metrics.MatchRecommendations.WithLabelValues(workflowMultiSource).Observe(float64(len(out)))
	return out, nil
}

// MatchPrecomputedVectors aggregates like MatchMultiSource over caller-supplied
// embeddings. Every vector must share one dimension.
func (s *Service) MatchPrecomputedVectors(
	ctx context.Context, sources, items []recommendation.LabeledVector,
) (_ []*recommendation.Recommendation, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, workflowVectors, "", start, err) }()

	if err = uniqueLabels("source", sources); err != nil {
		return nil, err
	}
	if err = uniqueLabels("item", items); err != nil {
		return nil, err
	}
	if err = sameDimension(sources, items); err != nil {
		return nil, err
	}

	agg := NewAggregator()
	for _, src := range sources {
		triples := make([]recommendation.Triple, 0, len(items))
		for _, it := range items {
			score, cerr := similarity.Cosine(src.Vector, it.Vector)
			if cerr != nil {
				return nil, fmt.Errorf("source %q item %q: %w", src.ID, it.ID, cerr)
			}
			triples = append(triples, recommendation.Triple{
				SourceID: src.ID, ItemID: it.ID, Score: similarity.Round4(score),
			})
		}
		agg.AddAll(TopPerSource(PositiveOnly(triples), s.cfg.PerSourceLimit))
	}

	out := agg.Ranked(s.cfg.OverallLimit)
	metrics.MatchRecommendations.WithLabelValues(workflowVectors).Observe(float64(len(out)))
	return out, nil
}

func (s *Service) scorer(ctx context.Context, b backend.Backend) (similarity.Scorer, error) {
	scorer, err := s.scorers(b, s.embedder)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedBackend) {
			logger.FromContext(ctx).Warn("Unsupported similarity backend", zap.String("backend", string(b)))
		}
		return nil, fmt.Errorf("build scorer: %w", err)
	}
	return scorer, nil
}

// queryText normalizes title and body separately, like the catalog fields.
func (s *Service) queryText(q query.Query) string {
	title := s.norm.NormalizeString(q.Title(), q.Language())
	if q.IsTitleOnly() {
		return title
	}
	body := s.norm.NormalizeString(q.Body(), q.Language())
	return strings.TrimSpace(title + " " + body)
}

func (s *Service) composites(cat catalog.Catalog, lang language.Language) []string {
	normalized := cat.Map(func(v string) string { return s.norm.NormalizeString(v, lang) })
	return normalized.Composites(s.cfg.Layout)
}

func (s *Service) observe(ctx context.Context, workflow string, b backend.Backend, start time.Time, err error) {
	duration := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.MatchRuns.WithLabelValues(workflow, string(b), status).Inc()
	metrics.MatchLatency.WithLabelValues(workflow, string(b)).Observe(duration.Seconds())

	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn("Match failed",
			zap.String("workflow", workflow),
			zap.String("backend", string(b)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	log.Debug("Match completed",
		zap.String("workflow", workflow),
		zap.String("backend", string(b)),
		zap.Duration("duration", duration),
	)
}

func uniqueSourceIDs(sources []query.Source) error {
	seen := make(map[string]struct{}, len(sources))
	for i := range sources {
		id := sources[i].ID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate source id %q", domain.ErrInvalidRequest, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func uniqueLabels(kind string, vecs []recommendation.LabeledVector) error {
	seen := make(map[string]struct{}, len(vecs))
	for _, v := range vecs {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("%w: %s id is required", domain.ErrInvalidRequest, kind)
		}
		if _, dup := seen[v.ID]; dup {
			return fmt.Errorf("%w: duplicate %s id %q", domain.ErrInvalidRequest, kind, v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}

// sameDimension checks every source and item vector against the length of the first one.
func sameDimension(sources, items []recommendation.LabeledVector) error {
	dim := -1
	for _, group := range [][]recommendation.LabeledVector{sources, items} {
		for _, v := range group {
			if dim < 0 {
				dim = len(v.Vector)
				continue
			}
			if len(v.Vector) != dim {
				return fmt.Errorf("vector %q: %w", v.ID, domain.NewDimensionMismatch(dim, len(v.Vector)))
			}
		}
	}
	return nil
}

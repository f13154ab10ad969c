package modmatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/modmatch/internal/db/redis"
	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/backend"
	"github.com/kailas-cloud/modmatch/internal/domain/catalog"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
	"github.com/kailas-cloud/modmatch/internal/domain/query"
	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
	"github.com/kailas-cloud/modmatch/internal/domain/relevance"
	"github.com/kailas-cloud/modmatch/internal/repository/embcache"
	"github.com/kailas-cloud/modmatch/internal/section"
	"github.com/kailas-cloud/modmatch/internal/textnorm"
	openaiEmb "github.com/kailas-cloud/modmatch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/modmatch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/modmatch/internal/usecase/health"
	keyworduc "github.com/kailas-cloud/modmatch/internal/usecase/keyword"
	matchuc "github.com/kailas-cloud/modmatch/internal/usecase/match"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced in tests.
type matchUseCase interface {
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

type keywordUseCase interface {
	ExtractJobKeywords(ctx context.Context, title, description string, topN int) (keyworduc.Keywords, error)
}

type sectionClassifier interface {
	EvaluateSection(text string, mode relevance.Mode) string
}

type normalizer interface {
	Normalize(text string, lang language.Language) textnorm.Normalized
}

// Client is the modmatch SDK entry point. Safe for concurrent use.
type Client struct {
	norm           normalizer
	sections       sectionClassifier
	matchSvc       matchUseCase
	keywordSvc     keywordUseCase
	healthSvc      healthUseCase
	defaultBackend backend.Backend
	chain          *embeddinguc.Chain
	store          *dbRedis.Store
	obs            *observer
}

// New creates a Client. The provided context is used for the cache readiness
// check when WithValkeyCache is set.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{obs: obs}
	if err := c.wire(ctx, cfg); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) wire(ctx context.Context, cfg *clientConfig) error {
	pipeline, err := textnorm.New(
		textnorm.WithLemmatizerKind(cfg.lemmatizer),
		textnorm.WithExtraStopWords(cfg.extraStopWords...),
	)
	if err != nil {
		return fmt.Errorf("modmatch: %w", err)
	}

	var classifierOpts []section.Option
	if cfg.highlight {
		classifierOpts = append(classifierOpts, section.WithHighlight())
	}
	classifier := section.New(classifierOpts...)

	embedder, err := c.buildEmbedder(ctx, cfg)
	if err != nil {
		return err
	}

	c.defaultBackend = backend.Parse(string(cfg.defaultBackend))
	if c.defaultBackend == "" {
		c.defaultBackend = backend.Lexical
		if embedder != nil {
			c.defaultBackend = backend.Dense
		}
	}

	c.norm = pipeline
	c.sections = classifier
	c.matchSvc = matchuc.New(pipeline, embedder, matchuc.Config{
		SingleLimit:        cfg.singleLimit,
		PerSourceLimit:     cfg.perSourceLimit,
		OverallLimit:       cfg.overallLimit,
		MultiSourceBackend: c.defaultBackend,
	})

	// Pass nil interfaces (not typed nil pointers) for absent components.
	var cachePinger healthuc.CachePinger
	if c.store != nil {
		cachePinger = c.store
	}
	var embChecker healthuc.EmbeddingChecker
	if embedder != nil {
		c.keywordSvc = keyworduc.New(
			classifier, keyworduc.NewEmbeddingExtractor(embedder), pipeline.StopWords(language.German),
		)
		if hc, ok := embedder.(domain.HealthChecker); ok {
			embChecker = hc
		}
	}
	c.healthSvc = healthuc.New(cachePinger, embChecker)
	return nil
}

// buildEmbedder returns nil when neither WithEmbedder nor WithOpenAI is set.
func (c *Client) buildEmbedder(ctx context.Context, cfg *clientConfig) (domain.Embedder, error) {
	var (
		base     domain.Embedder
		provider string
		model    string
		instr    string
	)
	switch {
	case cfg.embedder != nil:
		base, provider = cfg.embedder, "custom"
	case cfg.openai != nil:
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.openai.APIKey,
			BaseURL:    cfg.openai.BaseURL,
			Model:      cfg.openai.Model,
			Dimensions: cfg.openai.Dimensions,
			Provider:   "openai",
		})
		provider, model, instr = "openai", cfg.openai.Model, cfg.openai.Instruction
	default:
		return nil, nil
	}

	var cache func(domain.Embedder) domain.Embedder
	if len(cfg.cacheAddrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.cacheAddrs, Password: cfg.cachePassword})
		if err != nil {
			return nil, fmt.Errorf("modmatch: create cache store: %w", err)
		}
		c.store = store
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			return nil, fmt.Errorf("modmatch: cache not ready: %w", err)
		}
		cache = func(inner domain.Embedder) domain.Embedder {
			return embcache.New(inner, store, embcache.Options{Model: model, TTL: cfg.cacheTTL}, nil, zap.NewNop())
		}
	}

	chain, err := embeddinguc.BuildChain(base, embeddinguc.ChainConfig{
		Provider:    provider,
		Model:       model,
		Instruction: instr,
		Workers:     cfg.workers,
		Cache:       cache,
	})
	if err != nil {
		return nil, fmt.Errorf("modmatch: %w", err)
	}
	c.chain = chain
	return chain, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.chain != nil {
		c.chain.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// MatchQuery scores q against items and returns up to limit items with a
// positive score, best first. limit <= 0 means the configured default.
func (c *Client) MatchQuery(
	ctx context.Context, q Query, items []Item, b Backend, limit int,
) (_ []Recommendation, err error) {
	start := time.Now()
	be := c.backend(b)
	defer func() { c.obs.observe("match.query", start, err, "backend", string(be)) }()

	dq, err := toInternalQuery(q)
	if err != nil {
		return nil, err
	}
	cat, err := toInternalCatalog(items)
	if err != nil {
		return nil, err
	}

	recs, err := c.matchSvc.MatchSingleQuery(ctx, dq, cat, be, limit)
	if err != nil {
		return nil, fmt.Errorf("match query: %w", err)
	}
	return fromInternalRecommendations(recs), nil
}

// MatchTopics keeps the best items of every source and ranks them by how many
// sources picked them, then by mean score.
func (c *Client) MatchTopics(
	ctx context.Context, sources []Source, items []Item, b Backend,
) (_ []Recommendation, err error) {
	start := time.Now()
	be := c.backend(b)
	defer func() { c.obs.observe("match.topics", start, err, "backend", string(be)) }()

	srcs := make([]query.Source, 0, len(sources))
	for _, s := range sources {
		dq, qerr := toInternalQuery(s.Query)
		if qerr != nil {
			return nil, qerr
		}
		src, serr := query.NewSource(s.ID, dq)
		if serr != nil {
			return nil, fmt.Errorf("source: %w", serr)
		}
		srcs = append(srcs, src)
	}
	cat, err := toInternalCatalog(items)
	if err != nil {
		return nil, err
	}

	recs, err := c.matchSvc.MatchMultiSource(ctx, srcs, cat, be)
	if err != nil {
		return nil, fmt.Errorf("match topics: %w", err)
	}
	return fromInternalRecommendations(recs), nil
}

// MatchVectors ranks items against topics using caller-supplied embeddings.
func (c *Client) MatchVectors(
	ctx context.Context, topics, items []LabeledVector,
) (_ []Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match.vectors", start, err) }()

	recs, err := c.matchSvc.MatchPrecomputedVectors(ctx, toInternalVectors(topics), toInternalVectors(items))
	if err != nil {
		return nil, fmt.Errorf("match vectors: %w", err)
	}
	return fromInternalRecommendations(recs), nil
}

// ClassifySections filters job-posting text by relevance. An empty mode means ModeAll.
func (c *Client) ClassifySections(text string, mode Mode) (string, error) {
	m, err := section.ParseMode(string(mode))
	if err != nil {
		return "", fmt.Errorf("classify sections: %w", err)
	}
	return c.sections.EvaluateSection(text, m), nil
}

// ExtractKeywords returns up to topN keywords of a job posting.
// Requires an embedder.
func (c *Client) ExtractKeywords(
	ctx context.Context, title, description string, topN int,
) (_ Keywords, err error) {
	start := time.Now()
	defer func() { c.obs.observe("keywords.extract", start, err) }()

	if c.keywordSvc == nil {
		return Keywords{}, fmt.Errorf("extract keywords: no embedder configured: %w", ErrProviderUnavailable)
	}
	kw, err := c.keywordSvc.ExtractJobKeywords(ctx, title, description, topN)
	if err != nil {
		return Keywords{}, fmt.Errorf("extract keywords: %w", err)
	}
	return Keywords{Title: kw.Title, Description: kw.Description, Keywords: kw.Keywords}, nil
}

// EmbedTopics embeds every topic for later use with MatchVectors.
func (c *Client) EmbedTopics(ctx context.Context, topics []Topic) (_ []TopicEmbedding, err error) {
	start := time.Now()
	defer func() { c.obs.observe("topics.embed", start, err) }()

	in := make([]matchuc.Topic, len(topics))
	for i, t := range topics {
		in[i] = matchuc.Topic{Name: t.Name, Description: t.Description}
	}
	out, err := c.matchSvc.EmbedTopics(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("embed topics: %w", err)
	}
	res := make([]TopicEmbedding, len(out))
	for i, t := range out {
		res[i] = TopicEmbedding{Name: t.Name, Embedding: t.Embedding}
	}
	return res, nil
}

// Normalize returns the lemma tokens of text and the resolved language.
func (c *Client) Normalize(text string, lang Language) ([]string, Language) {
	n := c.norm.Normalize(text, toInternalLanguage(lang))
	return n.Tokens(), Language(n.Language())
}

func (c *Client) backend(b Backend) backend.Backend {
	if b == "" {
		return c.defaultBackend
	}
	return backend.Parse(string(b))
}

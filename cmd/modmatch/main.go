package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/config"
	dbRedis "github.com/kailas-cloud/modmatch/internal/db/redis"
	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/backend"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
	logpkg "github.com/kailas-cloud/modmatch/internal/logger"
	"github.com/kailas-cloud/modmatch/internal/metrics"
	"github.com/kailas-cloud/modmatch/internal/repository/embcache"
	"github.com/kailas-cloud/modmatch/internal/section"
	"github.com/kailas-cloud/modmatch/internal/textnorm"
	chiTransport "github.com/kailas-cloud/modmatch/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/modmatch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/modmatch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/modmatch/internal/usecase/health"
	keyworduc "github.com/kailas-cloud/modmatch/internal/usecase/keyword"
	matchuc "github.com/kailas-cloud/modmatch/internal/usecase/match"
	"github.com/kailas-cloud/modmatch/internal/version"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(logpkg.Options{Env: env, Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting modmatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("default_backend", cfg.Matching.DefaultBackend),
		zap.Bool("embedding", cfg.Embedding.Enabled()),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterMatchMetrics()

	ctx := context.Background()

	// Optional embedding cache
	var cacheStore *dbRedis.Store
	if cfg.Cache.Enabled && cfg.Embedding.Enabled() {
		cacheStore, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:       cfg.Cache.Addrs,
			Password:    cfg.Cache.Password,
			DialTimeout: time.Duration(cfg.Cache.DialTimeoutSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cacheStore.Close()

		if err := cacheStore.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Dense embedder chain
	var embedder domain.Embedder
	if cfg.Embedding.Enabled() {
		chain, err := buildEmbedder(cfg, cacheStore, logger)
		if err != nil {
			logger.Fatal("Failed to build embedder", zap.Error(err))
		}
		defer chain.Close()
		embedder = chain
		logger.Info("Embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("workers", cfg.Embedding.Workers),
		)
	}

	pipeline, err := textnorm.New(
		textnorm.WithLemmatizerKind(cfg.TextNorm.Lemmatizer),
		textnorm.WithExtraStopWords(cfg.TextNorm.ExtraStopWords...),
	)
	if err != nil {
		logger.Fatal("Failed to create normalization pipeline", zap.Error(err))
	}
	classifier := section.New()

	// Multi-source defaults to dense; without a provider only lexical can work.
	multiBackend := backend.Dense
	if embedder == nil {
		multiBackend = backend.Lexical
	}
	matchSvc := matchuc.New(pipeline, embedder, matchuc.Config{
		SingleLimit:        cfg.Matching.SingleLimit,
		PerSourceLimit:     cfg.Matching.PerSourceLimit,
		OverallLimit:       cfg.Matching.OverallLimit,
		MultiSourceBackend: multiBackend,
	})

	// Keyword extraction needs embeddings; nil interface disables the endpoint.
	var keywords chiTransport.KeywordExtractor
	if embedder != nil {
		keywords = keyworduc.New(
			classifier,
			keyworduc.NewEmbeddingExtractor(embedder),
			pipeline.StopWords(language.German),
		)
	}

	// Pass nil interfaces (not typed nil pointers) for absent components.
	var cachePinger healthuc.CachePinger
	if cacheStore != nil {
		cachePinger = cacheStore
	}
	var embChecker healthuc.EmbeddingChecker
	if hc, ok := embedder.(domain.HealthChecker); ok {
		embChecker = hc
	}
	healthSvc := healthuc.New(cachePinger, embChecker)

	server := chiTransport.NewServer(matchSvc, classifier, keywords, healthSvc, logger,
		chiTransport.WithDefaultBackend(backend.Parse(cfg.Matching.DefaultBackend)),
		chiTransport.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
	)
	r := chiTransport.NewRouter(server, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Pooled -> Cached -> Instrumented -> Instruction.
func buildEmbedder(cfg config.Config, store *dbRedis.Store, logger *zap.Logger) (*embeddinguc.Chain, error) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	var cache func(domain.Embedder) domain.Embedder
	if store != nil {
		cache = func(inner domain.Embedder) domain.Embedder {
			return embcache.New(inner, store, embcache.Options{
				Model:     cfg.Embedding.Model,
				KeyPrefix: cfg.Cache.KeyPrefix,
				TTL:       time.Duration(cfg.Cache.TTLSec) * time.Second,
			}, metrics.EmbeddingCacheLookups, logger)
		}
	}

	chain, err := embeddinguc.BuildChain(base, embeddinguc.ChainConfig{
		Provider:    cfg.Embedding.Provider,
		Model:       cfg.Embedding.Model,
		Instruction: cfg.Embedding.Instruction,
		ChunkSize:   cfg.Embedding.MaxBatchSize,
		Workers:     cfg.Embedding.Workers,
		Cache:       cache,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build embedder chain: %w", err)
	}
	return chain, nil
}

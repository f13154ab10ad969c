package modmatch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// OpenAIConfig configures the built-in OpenAI-compatible embedding provider.
type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int
	// Instruction is prepended to every text (e.g. "query: ").
	Instruction string
}

type clientConfig struct {
	embedder Embedder
	openai   *OpenAIConfig
	workers  int

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	singleLimit    int
	perSourceLimit int
	overallLimit   int
	defaultBackend Backend

	lemmatizer     string
	extraStopWords []string
	highlight      bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEmbedder sets a custom text embedding provider.
// Takes precedence over WithOpenAI.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithOpenAI uses the built-in client for any OpenAI-compatible /embeddings API.
func WithOpenAI(cfg OpenAIConfig) Option {
	return optionFunc(func(c *clientConfig) {
		c.openai = &cfg
	})
}

// WithWorkers fans batch embedding out over n concurrent single calls.
// Useful for providers without a native batch endpoint.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithValkeyCache caches embeddings of the built-in provider in Valkey or Redis.
// ttl <= 0 stores entries without expiry.
func WithValkeyCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithLimits sets the single-query limit, the per-source cap and the overall
// cap of multi-source matching. Zero keeps the default (5, 3, 3).
func WithLimits(single, perSource, overall int) Option {
	return optionFunc(func(c *clientConfig) {
		c.singleLimit = single
		c.perSourceLimit = perSource
		c.overallLimit = overall
	})
}

// WithDefaultBackend sets the backend used when a call passes an empty Backend.
// Defaults to dense when an embedder is configured and lexical otherwise.
func WithDefaultBackend(b Backend) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultBackend = b
	})
}

// WithLemmatizer selects LemmatizerSnowball (default) or LemmatizerIdentity.
func WithLemmatizer(kind string) Option {
	return optionFunc(func(c *clientConfig) {
		c.lemmatizer = kind
	})
}

// WithExtraStopWords adds words to every stop-word set.
func WithExtraStopWords(words ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.extraStopWords = append(c.extraStopWords, words...)
	})
}

// WithHighlight makes ClassifySections wrap matched headings in asterisks.
func WithHighlight() Option {
	return optionFunc(func(c *clientConfig) {
		c.highlight = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

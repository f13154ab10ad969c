// Package embcache puts a Redis/Valkey-backed vector cache in front of an embedder.
// The cache never fails a request: lookup and write errors are logged and the
// inner embedder is used instead.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// DefaultKeyPrefix namespaces cache keys.
const DefaultKeyPrefix = "modmatch:emb_cache:"

type kv interface {
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options configures the cache.
type Options struct {
	Model     string // part of every key, so a model switch never serves old vectors
	KeyPrefix string
	TTL       time.Duration // <= 0 keeps entries forever
}

// Embedder serves vectors from the cache and embeds only what is missing.
// Hits report zero tokens.
type Embedder struct {
	inner   domain.Embedder
	kv      kv
	opts    Options
	lookups *prometheus.CounterVec
	logger  *zap.Logger
}

// New wraps inner. lookups, when non-nil, is a counter vec with a "result" label.
func New(inner domain.Embedder, store kv, opts Options, lookups *prometheus.CounterVec, logger *zap.Logger) *Embedder {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	return &Embedder{inner: inner, kv: store, opts: opts, lookups: lookups, logger: logger}
}

// Embed returns the cached vector for text or embeds and stores it.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := e.key(text)
	if vecs, _ := e.lookup(ctx, []string{key}); vecs[0] != nil {
		return domain.EmbeddingResult{Embedding: vecs[0]}, nil
	}

	res, err := e.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}
	e.store(ctx, key, res.Embedding)
	return res, nil
}

// BatchEmbed resolves all texts with one MGET and sends only the misses to inner.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = e.key(t)
	}
	vecs, misses := e.lookup(ctx, keys)
	out := domain.BatchEmbeddingResult{Embeddings: vecs}
	if len(misses) == 0 {
		return out, nil
	}

	pending := make([]string, len(misses))
	for j, i := range misses {
		pending[j] = texts[i]
	}

	res, err := domain.Batch(ctx, e.inner, pending)
	if err != nil {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("embed %d cache misses: %w", len(pending), err)
	}
	if len(res.Embeddings) != len(pending) {
		return domain.BatchEmbeddingResult{}, fmt.Errorf("embed cache misses: %d vectors for %d texts: %w",
			len(res.Embeddings), len(pending), domain.ErrProviderUnavailable)
	}

	for j, i := range misses {
		out.Embeddings[i] = res.Embeddings[j]
		e.store(ctx, keys[i], res.Embeddings[j])
	}
	out.PromptTokens, out.TotalTokens = res.PromptTokens, res.TotalTokens
	return out, nil
}

// HealthCheck reports the inner embedder's health; the store is probed separately.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if hc, ok := e.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

// lookup returns one slot per key, nil on a miss, and the indexes of the misses.
func (e *Embedder) lookup(ctx context.Context, keys []string) ([][]float32, []int) {
	vecs := make([][]float32, len(keys))
	raw, err := e.kv.MGet(ctx, keys)
	if err != nil {
		e.logger.Warn("Embedding cache lookup failed", zap.Int("keys", len(keys)), zap.Error(err))
		raw = nil
	}

	var misses []int
	for i := range keys {
		if i < len(raw) && raw[i] != nil {
			v, derr := decodeVector(raw[i])
			if derr == nil {
				vecs[i] = v
				e.count("hit")
				continue
			}
			e.logger.Warn("Dropping corrupt embedding cache entry", zap.String("key", keys[i]), zap.Error(derr))
		}
		e.count("miss")
		misses = append(misses, i)
	}
	return vecs, misses
}

func (e *Embedder) store(ctx context.Context, key string, vec []float32) {
	if err := e.kv.SetWithTTL(ctx, key, encodeVector(vec), e.opts.TTL); err != nil {
		e.logger.Warn("Embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (e *Embedder) count(result string) {
	if e.lookups != nil {
		e.lookups.WithLabelValues(result).Inc()
	}
}

func (e *Embedder) key(text string) string {
	sum := sha256.Sum256([]byte(e.opts.Model + "\x00" + text))
	return e.opts.KeyPrefix + hex.EncodeToString(sum[:])
}

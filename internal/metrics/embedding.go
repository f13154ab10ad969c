package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Provider-side embedding metrics. Outcome is "ok" or an error kind such as
// "api_error" or "empty_response".
var (
	EmbeddingCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modmatch",
		Subsystem: "embedding",
		Name:      "provider_calls_total",
		Help:      "Embedding provider calls by outcome",
	}, []string{"provider", "model", "outcome"})

	EmbeddingLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modmatch",
		Subsystem: "embedding",
		Name:      "provider_latency_seconds",
		Help:      "Latency of successful embedding provider calls",
		Buckets:   prometheus.ExponentialBuckets(0.025, 2, 10),
	}, []string{"provider", "model"})

	EmbeddingTokens = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modmatch",
		Subsystem: "embedding",
		Name:      "tokens_total",
		Help:      "Tokens billed by the embedding provider",
	}, []string{"provider", "model", "kind"})

	EmbeddingBatchSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modmatch",
		Subsystem: "embedding",
		Name:      "batch_texts",
		Help:      "Texts per batch embedding call, after deduplication",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 256, 1024},
	}, []string{"provider", "model"})

	// EmbeddingCacheLookups counts cache lookups by result: "hit" or "miss".
	EmbeddingCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modmatch",
		Subsystem: "embedding",
		Name:      "cache_lookups_total",
		Help:      "Embedding cache lookups by result",
	}, []string{"result"})
)

var registerEmbedding sync.Once

// RegisterEmbeddingMetrics registers the embedding collectors with the default registry.
func RegisterEmbeddingMetrics() {
	registerEmbedding.Do(func() {
		prometheus.MustRegister(
			EmbeddingCalls,
			EmbeddingLatency,
			EmbeddingTokens,
			EmbeddingBatchSize,
			EmbeddingCacheLookups,
		)
	})
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Matching workflow metrics. Workflow is "single", "multi_source" or "vectors".
var (
	MatchRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modmatch",
		Subsystem: "match",
		Name:      "runs_total",
		Help:      "Matching workflow runs by backend and outcome",
	}, []string{"workflow", "backend", "outcome"})

	MatchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modmatch",
		Subsystem: "match",
		Name:      "latency_seconds",
		Help:      "Matching workflow latency",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"workflow", "backend"})

	MatchRecommendations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modmatch",
		Subsystem: "match",
		Name:      "recommendations",
		Help:      "Recommendations returned per run",
		Buckets:   []float64{0, 1, 2, 3, 5, 10, 25},
	}, []string{"workflow"})

	KeywordRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modmatch",
		Subsystem: "keywords",
		Name:      "runs_total",
		Help:      "Job keyword extraction runs by outcome",
	}, []string{"outcome"})
)

var registerMatch sync.Once

// RegisterMatchMetrics registers the matching collectors with the default registry.
func RegisterMatchMetrics() {
	registerMatch.Do(func() {
		prometheus.MustRegister(MatchRuns, MatchLatency, MatchRecommendations, KeywordRuns)
	})
}

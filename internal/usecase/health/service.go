package health

import (
	"context"
	"sync"
	"time"
)

// Status is the aggregated health of the matching service.
type Status string

const (
	Healthy   Status = "ok"
	Degraded  Status = "degraded"
	Unhealthy Status = "error"
)

// CheckResult is the outcome of one component probe.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// CachePinger is satisfied by the embedding cache store.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker is satisfied by the embedder chain.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// Report holds the aggregated status and one result per probed component.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

const defaultProbeTimeout = 3 * time.Second

type probe struct {
	name string
	fn   func(ctx context.Context) error
}

// Service probes the optional dependencies of the engine. Lexical matching
// needs neither, so a Service with no probes reports Healthy.
type Service struct {
	probes  []probe
	timeout time.Duration
}

// New creates a Service. Nil cache or embedding are not probed.
func New(cache CachePinger, embedding EmbeddingChecker) *Service {
	s := &Service{timeout: defaultProbeTimeout}
	if cache != nil {
		s.probes = append(s.probes, probe{name: "cache", fn: cache.Ping})
	}
	if embedding != nil {
		s.probes = append(s.probes, probe{name: "embedding", fn: embedding.HealthCheck})
	}
	return s
}

// Check runs every probe concurrently, each bounded by the probe timeout.
// One failure out of several is Degraded; all failing is Unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	results := make([]CheckResult, len(s.probes))

	var wg sync.WaitGroup
	for i, p := range s.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			results[i] = CheckOK
			if err := p.fn(pctx); err != nil {
				results[i] = CheckError
			}
		}()
	}
	wg.Wait()

	report := Report{Status: Healthy, Checks: make(map[string]CheckResult, len(s.probes))}
	failed := 0
	for i, p := range s.probes {
		report.Checks[p.name] = results[i]
		if results[i] == CheckError {
			failed++
		}
	}
	switch {
	case failed == 0:
	case failed == len(s.probes):
		report.Status = Unhealthy
	default:
		report.Status = Degraded
	}
	return report
}

package modmatch

import (
	"context"

	healthuc "github.com/kailas-cloud/modmatch/internal/usecase/health"
)

// Aggregated health values reported by Client.Health.
const (
	StatusOK       = string(healthuc.Healthy)
	StatusDegraded = string(healthuc.Degraded)
	StatusError    = string(healthuc.Unhealthy)
)

// HealthStatus is the result of probing the optional embedding cache and provider.
// A lexical-only client has no components and is always StatusOK.
type HealthStatus struct {
	Status     string
	Components map[string]bool
}

// OK reports whether every probed component answered.
func (h HealthStatus) OK() bool { return h.Status == StatusOK }

// Health probes the configured components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	hs := HealthStatus{
		Status:     string(report.Status),
		Components: make(map[string]bool, len(report.Checks)),
	}
	for name, res := range report.Checks {
		hs.Components[name] = res == healthuc.CheckOK
	}
	return hs
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

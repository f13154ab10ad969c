package modmatch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// outcome buckets an operation error into a low-cardinality label value.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrUnsupportedBackend):
		return "invalid"
	case errors.Is(err, ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	default:
		return "error"
	}
}

type observer struct {
	logger    *slog.Logger
	calls     *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	hasMetric bool
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}

	o.calls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modmatch",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "SDK calls by operation and outcome.",
	}, []string{"operation", "outcome"})
	o.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modmatch",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "SDK call latency in seconds.",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"operation"})

	var err error
	if o.calls, err = registerShared(reg, o.calls); err != nil {
		return nil, err
	}
	if o.latency, err = registerShared(reg, o.latency); err != nil {
		return nil, err
	}
	o.hasMetric = true
	return o, nil
}

// registerShared registers c, or returns the collector already registered
// under the same descriptor so that several clients can share a registry.
func registerShared[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var dup prometheus.AlreadyRegisteredError
	if !errors.As(err, &dup) {
		return c, fmt.Errorf("modmatch: register metric: %w", err)
	}
	existing, ok := dup.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("modmatch: metric registered with type %T", dup.ExistingCollector)
	}
	return existing, nil
}

// observe records one finished call; attrs are extra slog key/value pairs.
func (o *observer) observe(op string, start time.Time, err error, attrs ...any) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	res := outcome(err)

	if o.hasMetric {
		o.calls.WithLabelValues(op, res).Inc()
		o.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	if o.logger == nil {
		return
	}

	args := append([]any{"op", op, "outcome", res, "elapsed", elapsed}, attrs...)
	if err != nil {
		o.logger.Warn("modmatch call failed", append(args, "error", err)...)
		return
	}
	o.logger.Debug("modmatch call finished", args...)
}

package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error        { return f(ctx) }
func (f pingFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("conn refused") })
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name      string
		cache     CachePinger
		embedding EmbeddingChecker
		status    Status
		checks    map[string]CheckResult
	}{
		{"lexical only", nil, nil, Healthy, map[string]CheckResult{}},
		{"all up", up, up, Healthy, map[string]CheckResult{"cache": CheckOK, "embedding": CheckOK}},
		{"cache down", down, up, Degraded, map[string]CheckResult{"cache": CheckError, "embedding": CheckOK}},
		{"provider down", up, down, Degraded, map[string]CheckResult{"cache": CheckOK, "embedding": CheckError}},
		{"all down", down, down, Unhealthy, map[string]CheckResult{"cache": CheckError, "embedding": CheckError}},
		{"provider only and down", nil, down, Unhealthy, map[string]CheckResult{"embedding": CheckError}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := New(tc.cache, tc.embedding).Check(context.Background())
			assert.Equal(t, tc.status, r.Status)
			assert.Equal(t, tc.checks, r.Checks)
		})
	}
}

func TestCheck_ProbeTimeout(t *testing.T) {
	blocked := pingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	svc := New(blocked, up)
	svc.timeout = 20 * time.Millisecond

	start := time.Now()
	r := svc.Check(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, Degraded, r.Status)
	assert.Equal(t, CheckError, r.Checks["cache"])
}

func TestCheck_ProbesRunConcurrently(t *testing.T) {
	slow := pingFunc(func(context.Context) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	start := time.Now()
	r := New(slow, slow).Check(context.Background())

	assert.Equal(t, Healthy, r.Status)
	assert.Less(t, time.Since(start), 190*time.Millisecond)
}

package domain

import (
	"context"
	"sync"
)

type usageKey struct{}

// EmbeddingUsage tallies provider calls and tokens spent while serving one request.
// It is safe for concurrent use: multi-source matching embeds from several goroutines.
type EmbeddingUsage struct {
	mu     sync.Mutex
	calls  int
	prompt int
	total  int
}

// NewContextWithUsage attaches a fresh tally to ctx.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := new(EmbeddingUsage)
	return context.WithValue(ctx, usageKey{}, u), u
}

// UsageFromContext returns the tally attached to ctx, or nil.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(usageKey{}).(*EmbeddingUsage)
	return u
}

// Record counts one embedding call. A cache hit records a call with zero tokens.
func (u *EmbeddingUsage) Record(promptTokens, totalTokens int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.calls++
	u.prompt += promptTokens
	u.total += totalTokens
	u.mu.Unlock()
}

// Snapshot returns the call count and the prompt and total tokens so far.
func (u *EmbeddingUsage) Snapshot() (calls, promptTokens, totalTokens int) {
	if u == nil {
		return 0, 0, 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls, u.prompt, u.total
}

// Package similarity scores a query text against document texts.
package similarity

import (
	"context"
	"fmt"
	"math"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/backend"
)

// Scorer returns one score per doc, in doc order. Scores lie in [-1, 1]
// and are rounded to 4 decimals.
type Scorer interface {
	Score(ctx context.Context, query string, docs []string) ([]float64, error)
}

// New returns the scorer for b. The embedder is required for backend.Dense only.
func New(b backend.Backend, embedder domain.Embedder) (Scorer, error) {
	switch b {
	case backend.Lexical:
		return NewLexical(), nil
	case backend.Dense:
		if embedder == nil {
			return nil, fmt.Errorf("dense backend: no embedder configured: %w", domain.ErrProviderUnavailable)
		}
		return NewDense(embedder), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, string(b))
	}
}

// Round4 rounds x to 4 decimal places.
func Round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

func clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

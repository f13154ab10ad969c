package match

import (
	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/backend"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
	"github.com/kailas-cloud/modmatch/internal/similarity"
)

// Normalizer turns raw text into its normalized, space-joined form.
type Normalizer interface {
	NormalizeString(text string, lang language.Language) string
}

// ScorerFactory builds the scorer for a backend.
type ScorerFactory func(b backend.Backend, embedder domain.Embedder) (similarity.Scorer, error)

package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// Topic is a curriculum topic to embed.
type Topic struct {
	Name        string
	Description string
}

// TopicEmbedding is the vector of one topic, in request order.
type TopicEmbedding struct {
	Name      string
	Embedding []float32
}

// EmbedTopics embeds "name description" for every topic in one batch so that
// callers can store the vectors and later use MatchPrecomputedVectors.
func (s *Service) EmbedTopics(ctx context.Context, topics []Topic) ([]TopicEmbedding, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("embed topics: no embedder configured: %w", domain.ErrProviderUnavailable)
	}
	if len(topics) == 0 {
		return []TopicEmbedding{}, nil
	}

	texts := make([]string, len(topics))
	for i, t := range topics {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%w: topic %d: name is required", domain.ErrInvalidRequest, i)
		}
		texts[i] = strings.TrimSpace(t.Name + " " + t.Description)
	}

	vecs, err := domain.EmbedAll(ctx, s.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("embed topics: %w", err)
	}

	out := make([]TopicEmbedding, len(topics))
	for i, t := range topics {
		out[i] = TopicEmbedding{Name: t.Name, Embedding: vecs[i]}
	}
	return out, nil
}

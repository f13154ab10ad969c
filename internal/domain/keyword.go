package domain

import "context"

// KeywordExtractor picks the topN keywords of text that are not in stopWords.
// Empty text yields an empty slice and no error.
type KeywordExtractor interface {
	Extract(ctx context.Context, text string, topN int, stopWords map[string]struct{}) ([]string, error)
}

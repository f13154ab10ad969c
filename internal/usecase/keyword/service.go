// Package keyword extracts the keywords of a job posting from its relevant sections.
package keyword

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/relevance"
	"github.com/kailas-cloud/modmatch/internal/logger"
	"github.com/kailas-cloud/modmatch/internal/metrics"
)

// DefaultTopN is used when ExtractJobKeywords gets topN <= 0.
const DefaultTopN = 5

// MaxTopN bounds topN.
const MaxTopN = 100

var sentenceSplit = regexp.MustCompile(`[.!?\n]`)

// SectionClassifier selects the relevant lines of a posting.
type SectionClassifier interface {
	EvaluateSection(text string, mode relevance.Mode) string
}

// Keywords is the outcome of ExtractJobKeywords.
type Keywords struct {
	Title string
	// Description is the text keywords were extracted from.
	Description string
	Keywords    []string
}

// Service runs the job keyword workflow.
type Service struct {
	sections  SectionClassifier
	extractor domain.KeywordExtractor
	stopWords map[string]struct{}
}

// New creates a keyword service. base is typically the German stop set of the
// normalization pipeline; JobStopWords are added to it.
func New(sections SectionClassifier, extractor domain.KeywordExtractor, base map[string]struct{}) *Service {
	stop := make(map[string]struct{}, len(base)+len(JobStopWords))
	for w := range base {
		stop[w] = struct{}{}
	}
	for _, w := range JobStopWords {
		stop[w] = struct{}{}
	}
	return &Service{sections: sections, extractor: extractor, stopWords: stop}
}

// ExtractJobKeywords picks the important sections of description (the whole
// description when none is found), takes the best keyword of every sentence
// and returns the topN best of those candidates.
func (s *Service) ExtractJobKeywords(
	ctx context.Context, title, description string, topN int,
) (_ Keywords, err error) {
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.KeywordRuns.WithLabelValues(status).Inc()
	}()

	if topN <= 0 {
		topN = DefaultTopN
	}
	if topN > MaxTopN {
		return Keywords{}, fmt.Errorf("%w: topN must be at most %d", domain.ErrInvalidRequest, MaxTopN)
	}

	text := s.sections.EvaluateSection(description, relevance.Important)
	if strings.TrimSpace(text) == "" {
		text = description
	}
	out := Keywords{Title: title, Description: text, Keywords: []string{}}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	var candidates []string
	seen := make(map[string]struct{})
	for _, sentence := range sentenceSplit.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		best, err := s.extractor.Extract(ctx, sentence, 1, s.stopWords)
		if err != nil {
			return Keywords{}, fmt.Errorf("sentence keyword: %w", err)
		}
		if len(best) == 0 {
			continue
		}
		if _, dup := seen[best[0]]; !dup {
			seen[best[0]] = struct{}{}
			candidates = append(candidates, best[0])
		}
	}
	if len(candidates) == 0 {
		return out, nil
	}

	final, err := s.extractor.Extract(ctx, strings.Join(candidates, ", "), topN, s.stopWords)
	if err != nil {
		return Keywords{}, fmt.Errorf("final keywords: %w", err)
	}
	out.Keywords = final

	logger.FromContext(ctx).Debug("Keywords extracted",
		zap.Int("candidates", len(candidates)),
		zap.Int("keywords", len(final)),
	)
	return out, nil
}

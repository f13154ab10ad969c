package keyword

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/relevance"
)

type stubClassifier struct {
	out  string
	mode relevance.Mode
}

func (c *stubClassifier) EvaluateSection(_ string, mode relevance.Mode) string {
	c.mode = mode
	return c.out
}

// firstWordExtractor returns the first topN candidates in text order.
type firstWordExtractor struct {
	texts []string
	err   error
}

func (e *firstWordExtractor) Extract(_ context.Context, text string, topN int, stop map[string]struct{}) ([]string, error) {
	e.texts = append(e.texts, text)
	if e.err != nil {
		return nil, e.err
	}
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return r == ' ' || r == ',' }) {
		if _, skip := stop[w]; skip {
			continue
		}
		out = append(out, w)
		if len(out) == topN {
			break
		}
	}
	return out, nil
}

func TestExtractJobKeywords_UsesImportantSections(t *testing.T) {
	cls := &stubClassifier{out: "Anforderungen\nPython und SQL. Docker!\nPython Kenntnisse"}
	ex := &firstWordExtractor{}
	svc := New(cls, ex, map[string]struct{}{"und": {}})

	got, err := svc.ExtractJobKeywords(context.Background(), "Data Engineer", "full text", 2)
	require.NoError(t, err)

	assert.Equal(t, relevance.Important, cls.mode)
	assert.Equal(t, "Data Engineer", got.Title)
	assert.Equal(t, cls.out, got.Description)
	// "anforderungen" is a job stop word, so the heading sentence yields nothing.
	assert.Equal(t, []string{"python", "docker"}, got.Keywords)
	assert.Equal(t, "python, docker", ex.texts[len(ex.texts)-1])
}

func TestExtractJobKeywords_FallsBackToDescription(t *testing.T) {
	ex := &firstWordExtractor{}
	svc := New(&stubClassifier{}, ex, nil)

	got, err := svc.ExtractJobKeywords(context.Background(), "t", "Kubernetes Betrieb", 0)
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes Betrieb", got.Description)
	assert.Equal(t, []string{"kubernetes"}, got.Keywords)
}

func TestExtractJobKeywords_EmptyDescription(t *testing.T) {
	ex := &firstWordExtractor{}
	svc := New(&stubClassifier{}, ex, nil)

	got, err := svc.ExtractJobKeywords(context.Background(), "t", "  ", 3)
	require.NoError(t, err)
	assert.Empty(t, got.Keywords)
	assert.Empty(t, ex.texts)
}

func TestExtractJobKeywords_TopNBound(t *testing.T) {
	svc := New(&stubClassifier{}, &firstWordExtractor{}, nil)
	_, err := svc.ExtractJobKeywords(context.Background(), "t", "x", MaxTopN+1)
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestExtractJobKeywords_ExtractorError(t *testing.T) {
	svc := New(&stubClassifier{}, &firstWordExtractor{err: domain.ErrProviderUnavailable}, nil)
	_, err := svc.ExtractJobKeywords(context.Background(), "t", "Python", 3)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

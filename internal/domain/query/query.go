package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
)

// MaxTextLength bounds title+body of a single query.
const MaxTextLength = 65536

// Query is a free-text request (job posting, topic) matched against a catalog.
type Query struct {
	title     string
	body      string
	lang      language.Language
	titleOnly bool
}

// New validates and creates a Query. An empty lang means language.Auto.
func New(title, body string, lang language.Language) (Query, error) {
	if lang == "" {
		lang = language.Auto
	}
	if !lang.IsValid() {
		return Query{}, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidRequest, lang)
	}
	if len(title)+len(body) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidRequest, MaxTextLength)
	}
	return Query{title: title, body: body, lang: lang}, nil
}

// TitleOnly returns a copy of q whose Text is restricted to the title.
func (q Query) TitleOnly() Query {
	q.titleOnly = true
	return q
}

// IsTitleOnly reports whether TitleOnly was applied.
func (q *Query) IsTitleOnly() bool { return q.titleOnly }

// Title returns the query title.
func (q *Query) Title() string { return q.title }

// Body returns the query body (description or keywords).
func (q *Query) Body() string { return q.body }

// Language returns the declared language.
func (q *Query) Language() language.Language { return q.lang }

// Text returns the text to score: "title body", or the title alone when TitleOnly was applied.
func (q *Query) Text() string {
	if q.titleOnly {
		return q.title
	}
	return strings.TrimSpace(q.title + " " + q.body)
}

// Source is a query taking part in multi-source matching (e.g. a curriculum topic).
type Source struct {
	id string
	q  Query
}

// NewSource validates and creates a Source.
func NewSource(id string, q Query) (Source, error) {
	if strings.TrimSpace(id) == "" {
		return Source{}, fmt.Errorf("%w: source id is required", domain.ErrInvalidRequest)
	}
	return Source{id: id, q: q}, nil
}

// ID returns the source identifier.
func (s *Source) ID() string { return s.id }

// Query returns the source query.
func (s *Source) Query() Query { return s.q }

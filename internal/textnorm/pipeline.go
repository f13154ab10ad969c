// Package textnorm turns raw text into language-aware lemma tokens.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kailas-cloud/modmatch/internal/domain/language"
)

// Lemmatizer kinds accepted by WithLemmatizerKind.
const (
	LemmatizerSnowball = "snowball"
	LemmatizerIdentity = "identity"
)

// Pipeline normalizes text. It holds only immutable state after New.
type Pipeline struct {
	detector    Detector
	extra       []string
	lemmaKind   string
	stops       map[language.Language]stopSet
	lemmatizers map[language.Language]Lemmatizer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDetector overrides the language detector.
func WithDetector(d Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithExtraStopWords adds words to every language's stop set.
func WithExtraStopWords(words ...string) Option {
	return func(p *Pipeline) {
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				p.extra = append(p.extra, w)
			}
		}
	}
}

// WithLemmatizerKind selects "snowball" (default) or "identity".
func WithLemmatizerKind(kind string) Option {
	return func(p *Pipeline) { p.lemmaKind = kind }
}

// New builds a pipeline.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{lemmaKind: LemmatizerSnowball}
	for _, o := range opts {
		o(p)
	}
	if p.detector == nil {
		p.detector = NewWhatlangDetector()
	}

	stops, err := buildStopSets(p.extra)
	if err != nil {
		return nil, fmt.Errorf("textnorm: %w", err)
	}
	p.stops = stops

	p.lemmatizers = make(map[language.Language]Lemmatizer, 3)
	for _, lang := range []language.Language{language.German, language.English, language.Unknown} {
		switch p.lemmaKind {
		case LemmatizerSnowball, "":
			p.lemmatizers[lang] = NewSnowball(lang)
		case LemmatizerIdentity:
			p.lemmatizers[lang] = Identity{}
		default:
			return nil, fmt.Errorf("textnorm: unknown lemmatizer %q", p.lemmaKind)
		}
	}
	return p, nil
}

// Normalize runs the pipeline. Empty or whitespace-only text returns an empty
// result without consulting the detector.
func (p *Pipeline) Normalize(text string, lang language.Language) Normalized {
	if strings.TrimSpace(text) == "" {
		return Normalized{lang: p.resolveDeclared(lang)}
	}

	text = StripMarkup(text)
	if lang == language.Auto || lang == "" {
		lang = p.detector.Detect(text)
	}
	lang = p.resolveDeclared(lang)

	stops := p.stops[lang]
	lem := p.lemmatizers[lang]

	fields := strings.Fields(cleanRunes(text))
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, stop := stops[tok]; stop {
			continue
		}
		if tok = lem.Lemmatize(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return Normalized{tokens: tokens, lang: lang}
}

// NormalizeString is Normalize(...).String().
func (p *Pipeline) NormalizeString(text string, lang language.Language) string {
	return p.Normalize(text, lang).String()
}

// StopWords returns a copy of the stop set for lang.
func (p *Pipeline) StopWords(lang language.Language) map[string]struct{} {
	src := p.stops[p.resolveDeclared(lang)]
	out := make(map[string]struct{}, len(src))
	for w := range src {
		out[w] = struct{}{}
	}
	return out
}

func (p *Pipeline) resolveDeclared(lang language.Language) language.Language {
	switch lang {
	case language.German, language.English:
		return lang
	default:
		return language.Unknown
	}
}

// cleanRunes lowercases and replaces every non letter/digit rune with a space.
func cleanRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
}

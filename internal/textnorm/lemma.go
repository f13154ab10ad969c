package textnorm

import (
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/german"

	"github.com/kailas-cloud/modmatch/internal/domain/language"
)

// Lemmatizer reduces a lowercase token to its base form.
type Lemmatizer interface {
	Lemmatize(token string) string
}

// Identity returns tokens unchanged.
type Identity struct{}

// Lemmatize implements Lemmatizer.
func (Identity) Lemmatize(token string) string { return token }

// Snowball reduces tokens with the snowball stemmer of one language.
type Snowball struct {
	stem func(*snowballstem.Env) bool
}

// NewSnowball returns the stemmer for lang; Unknown uses German.
func NewSnowball(lang language.Language) Snowball {
	if lang == language.English {
		return Snowball{stem: english.Stem}
	}
	return Snowball{stem: german.Stem}
}

// Lemmatize implements Lemmatizer.
func (s Snowball) Lemmatize(token string) string {
	env := snowballstem.NewEnv(token)
	s.stem(env)
	return env.Current()
}

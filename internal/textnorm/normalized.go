package textnorm

import (
	"strings"

	"github.com/kailas-cloud/modmatch/internal/domain/language"
)

// Normalized is the output of the pipeline: ordered lemma tokens plus the resolved language.
type Normalized struct {
	tokens []string
	lang   language.Language
}

// Tokens returns a copy of the lemma tokens.
func (n Normalized) Tokens() []string {
	out := make([]string, len(n.tokens))
	copy(out, n.tokens)
	return out
}

// String joins the tokens with single spaces.
func (n Normalized) String() string { return strings.Join(n.tokens, " ") }

// Language returns the language used for stop words and lemmatization.
func (n Normalized) Language() language.Language { return n.lang }

// Empty reports whether no token survived normalization.
func (n Normalized) Empty() bool { return len(n.tokens) == 0 }

package backend

import "strings"

// Backend selects the similarity strategy for a matching request.
type Backend string

// Backend constants.
const (
	// Lexical scores over a per-request TF-IDF vector space.
	Lexical Backend = "lexical"
	// Dense scores over provider embeddings.
	Dense Backend = "dense"
)

// IsValid checks if the backend is one of the supported values.
func (b Backend) IsValid() bool {
	return b == Lexical || b == Dense
}

// Parse maps an identifier to a Backend. The legacy names "sklearn" and
// "bert" are accepted as aliases. Unknown identifiers are returned as-is so
// that the scorer factory can reject them.
func Parse(s string) Backend {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lexical", "tfidf", "sklearn":
		return Lexical
	case "dense", "embedding", "bert":
		return Dense
	default:
		return Backend(s)
	}
}

package similarity

import (
	"context"
	"math"
	"regexp"
	"strings"
)

var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Lexical scores with TF-IDF vectors fitted on docs plus the query, per call.
type Lexical struct{}

// NewLexical creates a lexical scorer.
func NewLexical() *Lexical { return &Lexical{} }

type sparse map[string]float64

// Score implements Scorer.
func (l *Lexical) Score(_ context.Context, query string, docs []string) ([]float64, error) {
	if len(docs) == 0 {
		return []float64{}, nil
	}

	counts := make([]map[string]int, len(docs)+1)
	df := make(map[string]int)
	for i, text := range append(append(make([]string, 0, len(docs)+1), docs...), query) {
		tc := termCounts(text)
		counts[i] = tc
		for term := range tc {
			df[term]++
		}
	}

	n := float64(len(counts))
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log((1+n)/(1+float64(d))) + 1
	}

	q := weigh(counts[len(docs)], idf)
	out := make([]float64, len(docs))
	for i := range docs {
		out[i] = Round4(clamp(dot(q, weigh(counts[i], idf))))
	}
	return out, nil
}

func termCounts(text string) map[string]int {
	tc := make(map[string]int)
	for _, term := range termPattern.FindAllString(strings.ToLower(text), -1) {
		tc[term]++
	}
	return tc
}

// weigh returns the L2-normalized tf-idf vector.
func weigh(tc map[string]int, idf map[string]float64) sparse {
	v := make(sparse, len(tc))
	var norm float64
	for term, c := range tc {
		w := float64(c) * idf[term]
		v[term] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for term := range v {
		v[term] /= norm
	}
	return v
}

func dot(a, b sparse) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var s float64
	for term, w := range a {
		s += w * b[term]
	}
	return s
}

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, b := range []Backend{Lexical, Dense} {
		assert.True(t, b.IsValid(), "%q", b)
	}
	for _, b := range []Backend{"", "bm25", "Dense"} {
		assert.False(t, b.IsValid(), "%q", b)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Backend
	}{
		{"lexical", Lexical},
		{"sklearn", Lexical},
		{"TFIDF", Lexical},
		{"dense", Dense},
		{"bert", Dense},
		{" embedding ", Dense},
		{"bm25", "bm25"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Parse(tc.in), "Parse(%q)", tc.in)
	}
}

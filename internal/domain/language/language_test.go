package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, l := range []Language{Auto, German, English, Unknown} {
		assert.True(t, l.IsValid(), "%q", l)
	}
	for _, l := range []Language{"", "fr", "DE"} {
		assert.False(t, l.IsValid(), "%q", l)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Language
		wantOK bool
	}{
		{"", Auto, true},
		{"auto", Auto, true},
		{"DE", German, true},
		{" german ", German, true},
		{"en", English, true},
		{"English", English, true},
		{"unknown", Unknown, true},
		{"fr", "", false},
	}
	for _, tc := range tests {
		got, ok := Parse(tc.in)
		assert.Equal(t, tc.want, got, "Parse(%q)", tc.in)
		assert.Equal(t, tc.wantOK, ok, "Parse(%q) ok", tc.in)
	}
}

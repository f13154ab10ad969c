package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
)

func TestNew_DefaultsToAuto(t *testing.T) {
	q, err := New("Data Engineer", "Python, SQL", "")
	require.NoError(t, err)
	assert.Equal(t, language.Auto, q.Language())
	assert.Equal(t, "Data Engineer Python, SQL", q.Text())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		title, body string
		lang        language.Language
	}{
		{"unsupported language", "t", "b", "fr"},
		{"too long", strings.Repeat("a", MaxTextLength), "b", language.German},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.title, tt.body, tt.lang)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestTitleOnly(t *testing.T) {
	q, err := New("Data Engineer", "Python", language.English)
	require.NoError(t, err)

	titleOnly := q.TitleOnly()
	assert.Equal(t, "Data Engineer", titleOnly.Text())
	assert.Equal(t, "Data Engineer Python", q.Text(), "original query must be unchanged")
}

func TestText_EmptyBody(t *testing.T) {
	q, err := New("Data Engineer", "", language.Auto)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", q.Text())
}

func TestNewSource_RequiresID(t *testing.T) {
	q, err := New("t", "b", language.Auto)
	require.NoError(t, err)

	_, err = NewSource("", q)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	s, err := NewSource("T1", q)
	require.NoError(t, err)
	assert.Equal(t, "T1", s.ID())
	sq := s.Query()
	assert.Equal(t, "t", sq.Title())
}

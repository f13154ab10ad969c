package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendation_MeanAndFrequency(t *testing.T) {
	r := New("X")
	r.AddSource(SourceScore{SourceID: "A", Score: 0.9})
	r.AddSource(SourceScore{SourceID: "B", Score: 0.5})

	assert.Equal(t, 2, r.Frequency())
	assert.InDelta(t, 0.7, r.Score(), 1e-9)
}

func TestRecommendation_AddSourceIdempotent(t *testing.T) {
	r := New("X")
	require.True(t, r.AddSource(SourceScore{SourceID: "A", Score: 0.9}))
	require.False(t, r.AddSource(SourceScore{SourceID: "A", Score: 0.1}), "duplicate source should be rejected")

	assert.Equal(t, 1, r.Frequency())
	assert.InDelta(t, 0.9, r.Score(), 1e-9)
}

func TestRecommendation_EmptyScore(t *testing.T) {
	assert.Zero(t, New("X").Score())
}

func TestRecommendation_SourcesIsCopy(t *testing.T) {
	r := New("X")
	r.AddSource(SourceScore{SourceID: "A", Score: 0.3})
	src := r.Sources()
	src[0].Score = 1
	assert.InDelta(t, 0.3, r.Score(), 1e-9, "Sources() must not alias internal state")
}

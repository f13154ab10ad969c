package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
)

func tr(src, item string, score float64) recommendation.Triple {
	return recommendation.Triple{SourceID: src, ItemID: item, Score: score}
}

func TestAggregator_MeanAcrossSources(t *testing.T) {
	agg := NewAggregator()
	agg.Add(tr("A", "X", 0.9))
	agg.Add(tr("B", "X", 0.5))

	got := agg.Ranked(0)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Frequency())
	assert.InDelta(t, 0.7, got[0].Score(), 1e-9)
}

func TestAggregator_DuplicatePairIgnored(t *testing.T) {
	agg := NewAggregator()
	agg.Add(tr("A", "X", 0.9))
	agg.Add(tr("A", "X", 0.1))

	got := agg.Ranked(0)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Frequency())
	assert.InDelta(t, 0.9, got[0].Score(), 1e-9)
}

func TestAggregator_Ordering(t *testing.T) {
	tests := []struct {
		name    string
		triples []recommendation.Triple
		want    []string
	}{
		{
			name:    "frequency beats score",
			triples: []recommendation.Triple{tr("A", "Y", 0.95), tr("A", "X", 0.4), tr("B", "X", 0.4)},
			want:    []string{"X", "Y"},
		},
		{
			name:    "score breaks frequency tie",
			triples: []recommendation.Triple{tr("A", "X", 0.3), tr("A", "Y", 0.8)},
			want:    []string{"Y", "X"},
		},
		{
			name:    "insertion order on full tie",
			triples: []recommendation.Triple{tr("A", "first", 0.5), tr("A", "second", 0.5)},
			want:    []string{"first", "second"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator()
			agg.AddAll(tt.triples)
			assert.Equal(t, tt.want, ids(agg.Ranked(0)))
		})
	}
}

func TestAggregator_Limit(t *testing.T) {
	agg := NewAggregator()
	for _, id := range []string{"a", "b", "c", "d"} {
		agg.Add(tr("S", id, 0.5))
	}
	assert.Len(t, agg.Ranked(3), 3)
	assert.Len(t, agg.Ranked(0), 4, "zero limit must not truncate")
}

func TestTopPerSource(t *testing.T) {
	in := []recommendation.Triple{
		tr("S", "a", 0.1), tr("S", "b", 0.9), tr("S", "c", 0.5), tr("S", "d", 0.5), tr("S", "e", 0.7),
	}
	got := TopPerSource(in, 3)

	ids := make([]string, len(got))
	for i, g := range got {
		ids[i] = g.ItemID
	}
	assert.Equal(t, []string{"b", "e", "c"}, ids)
	assert.Equal(t, "a", in[0].ItemID, "input must not be reordered")
}

func TestPositiveOnly(t *testing.T) {
	got := PositiveOnly([]recommendation.Triple{tr("S", "a", 0), tr("S", "b", -0.2), tr("S", "c", 0.0001)})
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ItemID)
}

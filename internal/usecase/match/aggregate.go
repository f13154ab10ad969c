package match

import (
	"sort"

	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
)

// PositiveOnly drops triples whose score is not strictly positive.
func PositiveOnly(triples []recommendation.Triple) []recommendation.Triple {
	out := make([]recommendation.Triple, 0, len(triples))
	for _, t := range triples {
		if t.Score > 0 {
			out = append(out, t)
		}
	}
	return out
}

// TopPerSource returns the k highest-scoring triples, score descending.
// Exact ties keep their input order. k <= 0 keeps everything.
func TopPerSource(triples []recommendation.Triple, k int) []recommendation.Triple {
	out := make([]recommendation.Triple, len(triples))
	copy(out, triples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// Aggregator merges triples into one Recommendation per item.
// Not safe for concurrent use.
type Aggregator struct {
	byItem map[string]*recommendation.Recommendation
	order  []*recommendation.Recommendation
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{byItem: make(map[string]*recommendation.Recommendation)}
}

// Add records t. A repeated (source, item) pair is ignored.
func (a *Aggregator) Add(t recommendation.Triple) {
	rec, ok := a.byItem[t.ItemID]
	if !ok {
		rec = recommendation.New(t.ItemID)
		a.byItem[t.ItemID] = rec
		a.order = append(a.order, rec)
	}
	rec.AddSource(recommendation.SourceScore{SourceID: t.SourceID, Score: t.Score})
}

// AddAll records every triple in order.
func (a *Aggregator) AddAll(triples []recommendation.Triple) {
	for _, t := range triples {
		a.Add(t)
	}
}

// Ranked returns recommendations by frequency desc, then score desc, stable
// for remaining ties. limit <= 0 disables truncation.
func (a *Aggregator) Ranked(limit int) []*recommendation.Recommendation {
	out := make([]*recommendation.Recommendation, len(a.order))
	copy(out, a.order)
	sort.SliceStable(out, func(i, j int) bool {
		if fi, fj := out[i].Frequency(), out[j].Frequency(); fi != fj {
			return fi > fj
		}
		return out[i].Score() > out[j].Score()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

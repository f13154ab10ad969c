package recommendation

// Triple is one (source, item, score) observation from a scorer.
type Triple struct {
	SourceID string
	ItemID   string
	Score    float64
}

// SourceScore is a source's contribution to a Recommendation.
type SourceScore struct {
	SourceID string
	Score    float64
}

// LabeledVector is a precomputed embedding tagged with its owner id.
type LabeledVector struct {
	ID     string
	Vector []float32
}

// Recommendation aggregates the sources that matched one catalog item.
// Frequency and Score are derived from the source list on every read.
type Recommendation struct {
	itemID  string
	sources []SourceScore
}

// New creates an empty recommendation for itemID.
func New(itemID string) *Recommendation {
	return &Recommendation{itemID: itemID}
}

// AddSource appends s unless a source with the same id is already present.
// Reports whether s was added.
func (r *Recommendation) AddSource(s SourceScore) bool {
	for _, existing := range r.sources {
		if existing.SourceID == s.SourceID {
			return false
		}
	}
	r.sources = append(r.sources, s)
	return true
}

// ItemID returns the recommended catalog item id.
func (r *Recommendation) ItemID() string { return r.itemID }

// Sources returns a copy of the contributing sources in insertion order.
func (r *Recommendation) Sources() []SourceScore {
	out := make([]SourceScore, len(r.sources))
	copy(out, r.sources)
	return out
}

// Frequency returns the number of distinct contributing sources.
func (r *Recommendation) Frequency() int { return len(r.sources) }

// Score returns the arithmetic mean of source scores, 0 when there are none.
func (r *Recommendation) Score() float64 {
	if len(r.sources) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.sources {
		sum += s.Score
	}
	return sum / float64(len(r.sources))
}

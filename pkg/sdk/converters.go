package modmatch

import (
	"fmt"

	"github.com/kailas-cloud/modmatch/internal/domain/catalog"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
	"github.com/kailas-cloud/modmatch/internal/domain/query"
	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
)

func toInternalLanguage(l Language) language.Language {
	if parsed, ok := language.Parse(string(l)); ok {
		return parsed
	}
	return language.Language(l)
}

func toInternalQuery(q Query) (query.Query, error) {
	dq, err := query.New(q.Title, q.Body, toInternalLanguage(q.Language))
	if err != nil {
		return query.Query{}, fmt.Errorf("query: %w", err)
	}
	if q.TitleOnly {
		dq = dq.TitleOnly()
	}
	return dq, nil
}

func toInternalCatalog(items []Item) (catalog.Catalog, error) {
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		ci, err := catalog.New(it.ID, map[string]string{
			catalog.FieldName:    it.Name,
			catalog.FieldContent: it.Content,
			catalog.FieldSkills:  it.Skills,
			catalog.FieldChair:   it.Chair,
		})
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("catalog: %w", err)
		}
		out = append(out, ci)
	}
	cat, err := catalog.NewCatalog(out)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	return cat, nil
}

func toInternalVectors(vv []LabeledVector) []recommendation.LabeledVector {
	out := make([]recommendation.LabeledVector, len(vv))
	for i, v := range vv {
		out[i] = recommendation.LabeledVector{ID: v.ID, Vector: v.Vector}
	}
	return out
}

func fromInternalRecommendations(recs []*recommendation.Recommendation) []Recommendation {
	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		srcs := r.Sources()
		rec := Recommendation{
			ItemID:    r.ItemID(),
			Score:     r.Score(),
			Frequency: r.Frequency(),
			Sources:   make([]SourceScore, len(srcs)),
		}
		for j, s := range srcs {
			rec.Sources[j] = SourceScore{SourceID: s.SourceID, Score: s.Score}
		}
		out[i] = rec
	}
	return out
}

package textnorm

import (
	"fmt"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/de"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"

	"github.com/kailas-cloud/modmatch/internal/domain/language"
)

// GenderMarkers are the (m/w/d) tokens of German job titles.
var GenderMarkers = []string{"m", "w", "d"}

type stopSet map[string]struct{}

func loadStopSet(list []byte, extra []string) (stopSet, error) {
	tm := analysis.NewTokenMap()
	if err := tm.LoadBytes(list); err != nil {
		return nil, fmt.Errorf("load stop words: %w", err)
	}
	set := make(stopSet, len(tm)+len(extra))
	for w := range tm {
		set[w] = struct{}{}
	}
	for _, w := range extra {
		set[w] = struct{}{}
	}
	return set, nil
}

// buildStopSets returns the German and English sets; Unknown shares the German one.
func buildStopSets(extra []string) (map[language.Language]stopSet, error) {
	all := append(append([]string{}, GenderMarkers...), extra...)

	deSet, err := loadStopSet(de.GermanStopWords, all)
	if err != nil {
		return nil, fmt.Errorf("german: %w", err)
	}
	enSet, err := loadStopSet(en.EnglishStopWords, all)
	if err != nil {
		return nil, fmt.Errorf("english: %w", err)
	}

	return map[language.Language]stopSet{
		language.German:  deSet,
		language.English: enSet,
		language.Unknown: deSet,
	}, nil
}

package textnorm

import (
	"github.com/abadojack/whatlanggo"

	"github.com/kailas-cloud/modmatch/internal/domain/language"
)

// Detector resolves the language of a text.
type Detector interface {
	Detect(text string) language.Language
}

// WhatlangDetector detects German or English with whatlanggo.
type WhatlangDetector struct {
	opts whatlanggo.Options
}

// NewWhatlangDetector creates a detector restricted to German and English.
func NewWhatlangDetector() *WhatlangDetector {
	return &WhatlangDetector{opts: whatlanggo.Options{
		Whitelist: map[whatlanggo.Lang]bool{
			whatlanggo.Deu: true,
			whatlanggo.Eng: true,
		},
	}}
}

// Detect returns German, English or Unknown.
func (d *WhatlangDetector) Detect(text string) language.Language {
	info := whatlanggo.DetectWithOptions(text, d.opts)
	switch info.Lang {
	case whatlanggo.Deu:
		return language.German
	case whatlanggo.Eng:
		return language.English
	default:
		return language.Unknown
	}
}

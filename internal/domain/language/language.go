package language

import "strings"

// Language tags a text for stop-word and lemmatizer selection.
type Language string

// Supported languages.
const (
	// Auto asks the normalization pipeline to detect the language.
	Auto    Language = "auto"
	German  Language = "de"
	English Language = "en"
	// Unknown is the result of a failed detection; it is treated as German.
	Unknown Language = "unknown"
)

// IsValid checks if the language is one of the supported values.
func (l Language) IsValid() bool {
	return l == Auto || l == German || l == English || l == Unknown
}

// Parse maps user input to a Language. Empty input means Auto.
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, true
	case "de", "deu", "german", "deutsch":
		return German, true
	case "en", "eng", "english":
		return English, true
	case "unknown":
		return Unknown, true
	default:
		return "", false
	}
}

package modmatch

// Backend selects the similarity strategy.
type Backend string

// Backend constants. An empty Backend means the client default.
const (
	BackendLexical Backend = "lexical"
	BackendDense   Backend = "dense"
)

// Mode filters the output of ClassifySections.
type Mode string

// Mode constants.
const (
	ModeImportant   Mode = "important"
	ModeUnimportant Mode = "unimportant"
	ModeAll         Mode = "all"
)

// Language tags a query. The zero value means LanguageAuto.
type Language string

// Language constants.
const (
	LanguageAuto    Language = "auto"
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// Lemmatizer names accepted by WithLemmatizer.
const (
	LemmatizerSnowball = "snowball"
	LemmatizerIdentity = "identity"
)

// Query is a free-text query such as a job posting.
type Query struct {
	Title    string
	Body     string
	Language Language
	// TitleOnly restricts matching to the title.
	TitleOnly bool
}

// Source is a query taking part in multi-source matching.
type Source struct {
	ID string
	Query
}

// Item is a catalog entry. Name carries double weight in matching.
type Item struct {
	ID      string
	Name    string
	Content string
	Skills  string
	Chair   string
}

// SourceScore is the score one source gave an item.
type SourceScore struct {
	SourceID string
	Score    float64
}

// Recommendation is a ranked catalog item.
// Frequency is the number of distinct sources; Score is their mean score.
type Recommendation struct {
	ItemID    string
	Score     float64
	Frequency int
	Sources   []SourceScore
}

// LabeledVector is an id with a precomputed embedding.
type LabeledVector struct {
	ID     string
	Vector []float32
}

// Topic is a curriculum topic to embed.
type Topic struct {
	Name        string
	Description string
}

// TopicEmbedding is a topic name with its embedding.
type TopicEmbedding struct {
	Name      string
	Embedding []float32
}

// Keywords is the result of ExtractKeywords.
type Keywords struct {
	Title       string
	Description string
	Keywords    []string
}

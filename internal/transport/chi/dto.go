package chi

import (
	"github.com/kailas-cloud/modmatch/internal/domain/catalog"
	"github.com/kailas-cloud/modmatch/internal/domain/language"
	"github.com/kailas-cloud/modmatch/internal/domain/query"
	"github.com/kailas-cloud/modmatch/internal/domain/recommendation"
	matchuc "github.com/kailas-cloud/modmatch/internal/usecase/match"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeDimensionMismatch   ErrorCode = "vector_dimension_mismatch"
	ErrorCodeUnsupportedBackend  ErrorCode = "unsupported_backend"
	ErrorCodeProviderUnavailable ErrorCode = "provider_unavailable"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// QueryDTO is a free-text query. Language is de, en, unknown or auto (default).
type QueryDTO struct {
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Language string `json:"language,omitempty"`
}

// SourceDTO is one query of a multi-source match.
type SourceDTO struct {
	ID string `json:"id"`
	QueryDTO
}

// CatalogItemDTO is one catalog entry.
type CatalogItemDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Skills  string `json:"skills,omitempty"`
	Chair   string `json:"chair,omitempty"`
}

// MatchQueryRequest is the body of POST /v1/match/query.
type MatchQueryRequest struct {
	Query   QueryDTO         `json:"query"`
	Catalog []CatalogItemDTO `json:"catalog"`
}

// MatchTopicsRequest is the body of POST /v1/match/topics.
type MatchTopicsRequest struct {
	Topics  []SourceDTO      `json:"topics"`
	Catalog []CatalogItemDTO `json:"catalog"`
}

// LabeledVectorDTO is an id with its precomputed embedding.
type LabeledVectorDTO struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
}

// MatchVectorsRequest is the body of POST /v1/match/vectors.
type MatchVectorsRequest struct {
	Topics []LabeledVectorDTO `json:"topics"`
	Items  []LabeledVectorDTO `json:"items"`
}

// SourceScoreDTO is the score one source gave an item.
type SourceScoreDTO struct {
	SourceID string  `json:"source_id"`
	Score    float64 `json:"score"`
}

// RecommendationDTO is one ranked catalog item.
type RecommendationDTO struct {
	ItemID    string           `json:"item_id"`
	Score     float64          `json:"score"`
	Frequency int              `json:"frequency"`
	Sources   []SourceScoreDTO `json:"sources"`
}

// MatchResponse is the body of every successful match.
type MatchResponse struct {
	Recommendations []RecommendationDTO `json:"recommendations"`
}

// SectionsRequest is the body of POST /v1/sections.
type SectionsRequest struct {
	Text string `json:"text"`
}

// SectionsResponse carries the classifier output.
type SectionsResponse struct {
	Text string `json:"text"`
}

// KeywordsRequest is the body of POST /v1/keywords.
type KeywordsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TopN        int    `json:"top_n,omitempty"`
}

// KeywordsResponse is the result of keyword extraction.
type KeywordsResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// TopicDTO is a curriculum topic to embed.
type TopicDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// EmbedTopicsRequest is the body of POST /v1/embeddings/topics.
type EmbedTopicsRequest struct {
	Topics []TopicDTO `json:"topics"`
}

// TopicEmbeddingDTO is a topic name with its embedding.
type TopicEmbeddingDTO struct {
	Name      string    `json:"name"`
	Embedding []float32 `json:"embedding"`
}

// EmbedTopicsResponse lists topic embeddings in request order.
type EmbedTopicsResponse struct {
	Topics []TopicEmbeddingDTO `json:"topics"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func queryFromDTO(d QueryDTO) (query.Query, error) {
	lang, ok := language.Parse(d.Language)
	if !ok {
		lang = language.Language(d.Language)
	}
	return query.New(d.Title, d.Body, lang) //nolint:wrapcheck // domain validation error
}

func sourcesFromDTO(dd []SourceDTO) ([]query.Source, error) {
	out := make([]query.Source, 0, len(dd))
	for _, d := range dd {
		q, err := queryFromDTO(d.QueryDTO)
		if err != nil {
			return nil, err
		}
		src, err := query.NewSource(d.ID, q)
		if err != nil {
			return nil, err //nolint:wrapcheck // domain validation error
		}
		out = append(out, src)
	}
	return out, nil
}

func catalogFromDTO(dd []CatalogItemDTO) (catalog.Catalog, error) {
	items := make([]catalog.Item, 0, len(dd))
	for _, d := range dd {
		it, err := catalog.New(d.ID, map[string]string{
			catalog.FieldName:    d.Name,
			catalog.FieldContent: d.Content,
			catalog.FieldSkills:  d.Skills,
			catalog.FieldChair:   d.Chair,
		})
		if err != nil {
			return catalog.Catalog{}, err //nolint:wrapcheck // domain validation error
		}
		items = append(items, it)
	}
	return catalog.NewCatalog(items) //nolint:wrapcheck // domain validation error
}

func vectorsFromDTO(dd []LabeledVectorDTO) []recommendation.LabeledVector {
	out := make([]recommendation.LabeledVector, len(dd))
	for i, d := range dd {
		out[i] = recommendation.LabeledVector{ID: d.ID, Vector: d.Vector}
	}
	return out
}

func matchResponse(recs []*recommendation.Recommendation) MatchResponse {
	out := make([]RecommendationDTO, len(recs))
	for i, r := range recs {
		srcs := r.Sources()
		dto := RecommendationDTO{
			ItemID:    r.ItemID(),
			Score:     r.Score(),
			Frequency: r.Frequency(),
			Sources:   make([]SourceScoreDTO, len(srcs)),
		}
		for j, s := range srcs {
			dto.Sources[j] = SourceScoreDTO{SourceID: s.SourceID, Score: s.Score}
		}
		out[i] = dto
	}
	return MatchResponse{Recommendations: out}
}

func topicsFromDTO(dd []TopicDTO) []matchuc.Topic {
	out := make([]matchuc.Topic, len(dd))
	for i, d := range dd {
		out[i] = matchuc.Topic{Name: d.Name, Description: d.Description}
	}
	return out
}

func topicEmbeddingsResponse(tt []matchuc.TopicEmbedding) EmbedTopicsResponse {
	out := make([]TopicEmbeddingDTO, len(tt))
	for i, t := range tt {
		out[i] = TopicEmbeddingDTO{Name: t.Name, Embedding: t.Embedding}
	}
	return EmbedTopicsResponse{Topics: out}
}

package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/backend"
	"github.com/kailas-cloud/modmatch/internal/metrics"
	"github.com/kailas-cloud/modmatch/internal/section"
	healthuc "github.com/kailas-cloud/modmatch/internal/usecase/health"
)

const defaultMaxBodyBytes = 4 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the matching operations over HTTP.
type Server struct {
	match          Matcher
	sections       SectionClassifier
	keywords       KeywordExtractor
	health         HealthChecker
	defaultBackend backend.Backend
	maxBodyBytes   int64
	logger         *zap.Logger
	errorHandlers  []errorHandler
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultBackend sets the backend of /v1/match/query when the request names none.
func WithDefaultBackend(b backend.Backend) Option {
	return func(s *Server) { s.defaultBackend = b }
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates an HTTP API server. keywords may be nil when no embedding
// provider is configured; the endpoint then answers 502.
func NewServer(
	match Matcher,
	sections SectionClassifier,
	keywords KeywordExtractor,
	health HealthChecker,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		match:          match,
		sections:       sections,
		keywords:       keywords,
		health:         health,
		defaultBackend: backend.Lexical,
		maxBodyBytes:   defaultMaxBodyBytes,
		logger:         logger,
	}
	for _, o := range opts {
		o(s)
	}
	s.errorHandlers = []errorHandler{
		// provider first: an inconsistent provider dimension wraps both sentinels
		sentinelHandler(domain.ErrProviderUnavailable, http.StatusBadGateway, ErrorCodeProviderUnavailable),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadRequest, ErrorCodeDimensionMismatch),
		sentinelHandler(domain.ErrUnsupportedBackend, http.StatusBadRequest, ErrorCodeUnsupportedBackend),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
	}
	return s
}

// Register mounts all routes on r.
func (s *Server) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/match/query", s.MatchQuery)
		r.Post("/match/topics", s.MatchTopics)
		r.Post("/match/vectors", s.MatchVectors)
		r.Post("/sections", s.ClassifySections)
		r.Post("/keywords", s.ExtractKeywords)
		r.Post("/embeddings/topics", s.EmbedTopics)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// MatchQuery handles POST /v1/match/query.
func (s *Server) MatchQuery(w http.ResponseWriter, r *http.Request) {
	params, err := bindMatchQueryParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	var req MatchQueryRequest
	if !s.decode(w, r, &req) {
		return
	}

	q, err := queryFromDTO(req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if params.TitleOnly != nil && *params.TitleOnly {
		q = q.TitleOnly()
	}
	cat, err := catalogFromDTO(req.Catalog)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	b := s.defaultBackend
	if params.Backend != nil && *params.Backend != "" {
		b = backend.Parse(*params.Backend)
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	recs, err := s.match.MatchSingleQuery(ctx, q, cat, b, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, matchResponse(recs))
}

// MatchTopics handles POST /v1/match/topics.
func (s *Server) MatchTopics(w http.ResponseWriter, r *http.Request) {
	params, err := bindMatchTopicsParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	var req MatchTopicsRequest
	if !s.decode(w, r, &req) {
		return
	}

	sources, err := sourcesFromDTO(req.Topics)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	cat, err := catalogFromDTO(req.Catalog)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var b backend.Backend
	if params.Backend != nil && *params.Backend != "" {
		b = backend.Parse(*params.Backend)
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	recs, err := s.match.MatchMultiSource(ctx, sources, cat, b)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, matchResponse(recs))
}

// MatchVectors handles POST /v1/match/vectors.
func (s *Server) MatchVectors(w http.ResponseWriter, r *http.Request) {
	var req MatchVectorsRequest
	if !s.decode(w, r, &req) {
		return
	}

	recs, err := s.match.MatchPrecomputedVectors(r.Context(), vectorsFromDTO(req.Topics), vectorsFromDTO(req.Items))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matchResponse(recs))
}

// ClassifySections handles POST /v1/sections.
func (s *Server) ClassifySections(w http.ResponseWriter, r *http.Request) {
	params, err := bindSectionsParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	var req SectionsRequest
	if !s.decode(w, r, &req) {
		return
	}

	var raw string
	if params.Mode != nil {
		raw = *params.Mode
	}
	mode, err := section.ParseMode(raw)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SectionsResponse{Text: s.sections.EvaluateSection(req.Text, mode)})
}

// ExtractKeywords handles POST /v1/keywords.
func (s *Server) ExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if s.keywords == nil {
		s.handleDomainError(w, r, fmt.Errorf("keyword extraction: no embedder configured: %w", domain.ErrProviderUnavailable))
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	kw, err := s.keywords.ExtractJobKeywords(ctx, req.Title, req.Description, req.TopN)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	setEmbeddingHeaders(w, usage)
	keywords := kw.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	writeJSON(w, http.StatusOK, KeywordsResponse{Title: kw.Title, Description: kw.Description, Keywords: keywords})
}

// EmbedTopics handles POST /v1/embeddings/topics.
func (s *Server) EmbedTopics(w http.ResponseWriter, r *http.Request) {
	var req EmbedTopicsRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	out, err := s.match.EmbedTopics(ctx, topicsFromDTO(req.Topics))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, topicEmbeddingsResponse(out))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	calls, _, total := usage.Snapshot()
	if calls == 0 {
		return
	}
	w.Header().Set(metrics.EmbeddingTokensHeader, strconv.Itoa(total))
	w.Header().Set(metrics.EmbeddingCallsHeader, strconv.Itoa(calls))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Validation errors keep their
// detail; provider errors are reduced to the sentinel text.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrProviderUnavailable):
		return domain.ErrProviderUnavailable.Error()
	case errors.Is(err, domain.ErrDimensionMismatch),
		errors.Is(err, domain.ErrUnsupportedBackend),
		errors.Is(err, domain.ErrInvalidRequest):
		return err.Error()
	default:
		return "internal error"
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		log = log.With(zap.String("request_id", rid))
	}
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// MatchQueryParams are the query parameters of POST /v1/match/query.
type MatchQueryParams struct {
	Backend   *string
	Limit     *int
	TitleOnly *bool
}

// MatchTopicsParams are the query parameters of POST /v1/match/topics.
type MatchTopicsParams struct {
	Backend *string
}

// SectionsParams are the query parameters of POST /v1/sections.
type SectionsParams struct {
	Mode *string
}

func bindMatchQueryParams(r *http.Request) (MatchQueryParams, error) {
	var p MatchQueryParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "backend", q, &p.Backend); err != nil {
		return p, fmt.Errorf("invalid format for parameter backend: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return p, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "title_only", q, &p.TitleOnly); err != nil {
		return p, fmt.Errorf("invalid format for parameter title_only: %w", err)
	}
	return p, nil
}

func bindMatchTopicsParams(r *http.Request) (MatchTopicsParams, error) {
	var p MatchTopicsParams
	if err := runtime.BindQueryParameter("form", true, false, "backend", r.URL.Query(), &p.Backend); err != nil {
		return p, fmt.Errorf("invalid format for parameter backend: %w", err)
	}
	return p, nil
}

func bindSectionsParams(r *http.Request) (SectionsParams, error) {
	var p SectionsParams
	if err := runtime.BindQueryParameter("form", true, false, "mode", r.URL.Query(), &p.Mode); err != nil {
		return p, fmt.Errorf("invalid format for parameter mode: %w", err)
	}
	return p, nil
}

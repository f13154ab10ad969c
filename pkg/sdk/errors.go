package modmatch

import "github.com/kailas-cloud/modmatch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDimensionMismatch   = domain.ErrDimensionMismatch
	ErrUnsupportedBackend  = domain.ErrUnsupportedBackend
	ErrInvalidRequest      = domain.ErrInvalidRequest
	ErrProviderUnavailable = domain.ErrProviderUnavailable
)

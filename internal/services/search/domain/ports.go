package domain

import (
	"context"

	"gamedex/internal/platform/errors"
	"gamedex/internal/platform/flight"
)

// ErrAllSourcesFailed distinguishes "search is down" from an empty result.
// It is the only search failure a caller ever sees
var ErrAllSourcesFailed = errors.New(errors.ErrorCodeUnavailable, "all search sources failed")

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Search(ctx context.Context, req SearchRequest) (SearchResult, error)
	FlightStats(ctx context.Context) (flight.Stats, error)
}

// ExternalSource is the secondary catalog fallback. Implementations return
// an empty slice (not an error) when their rate budget is exhausted
type ExternalSource interface {
	Fetch(ctx context.Context, query string, limit int) ([]Game, error)
}

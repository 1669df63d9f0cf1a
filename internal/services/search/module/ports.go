package module

import (
	"context"

	"gamedex/internal/platform/flight"
	"gamedex/internal/services/search/domain"
	searchsvc "gamedex/internal/services/search/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptSearchPort struct{ svc searchsvc.Service }

// Search runs one coordinated catalog query
func (a adaptSearchPort) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	return a.svc.Search(ctx, req)
}

// FlightStats exposes the dedup counters
func (a adaptSearchPort) FlightStats(ctx context.Context) (flight.Stats, error) {
	return a.svc.FlightStats(ctx)
}

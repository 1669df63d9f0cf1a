// Package http provides http transport for search
package http

import (
	stdhttp "net/http"

	"gamedex/internal/modkit/httpkit"
	"gamedex/internal/services/search/domain"
	svc "gamedex/internal/services/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// coordinated catalog search
	httpkit.PostJSON[domain.SearchRequest](r, "/query", h.query)

	// dedup savings counters
	httpkit.Get(r, "/flight/stats", h.flightStats)
}

type handlers struct{ svc svc.Service }

// @Summary Search the catalog
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.SearchRequest true "Query"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /search/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.SearchRequest) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// @Summary In-flight dedup counters
// @Tags Search
// @Produce json
// @Success 200 {object} flight.Stats "ok"
// @Router /search/flight/stats [get]
func (h *handlers) flightStats(r *stdhttp.Request) (any, error) {
	return h.svc.FlightStats(r.Context())
}

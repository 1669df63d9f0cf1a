// Package http provides http transport for moderation
package http

import (
	stdhttp "net/http"

	"gamedex/internal/modkit/httpkit"
	"gamedex/internal/services/moderation/domain"
	svc "gamedex/internal/services/moderation/service"
)

// Register mounts moderation endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.FlagInput](r, "/flag", h.setFlag)
}

type handlers struct{ svc svc.Service }

// @Summary Apply a curation flag
// @Tags Moderation
// @Accept json
// @Produce json
// @Param payload body domain.FlagInput true "Flag"
// @Success 200 {object} domain.FlagResult "ok"
// @Router /moderation/flag [post]
func (h *handlers) setFlag(r *stdhttp.Request, in domain.FlagInput) (any, error) {
	return h.svc.SetFlag(r.Context(), in)
}

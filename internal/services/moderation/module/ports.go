package module

import (
	"context"

	"gamedex/internal/services/moderation/domain"
	modsvc "gamedex/internal/services/moderation/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptModerationPort struct{ svc modsvc.Service }

// SetFlag applies one curation flag
func (a adaptModerationPort) SetFlag(ctx context.Context, in domain.FlagInput) (domain.FlagResult, error) {
	return a.svc.SetFlag(ctx, in)
}

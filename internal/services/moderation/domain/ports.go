package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	SetFlag(ctx context.Context, in FlagInput) (FlagResult, error)
}

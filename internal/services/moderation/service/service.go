// Package service contains moderation workflows
package service

import (
	"context"

	"gamedex/internal/modkit/repokit"
	perr "gamedex/internal/platform/errors"
	"gamedex/internal/platform/flight"
	"gamedex/internal/platform/logger"
	"gamedex/internal/services/moderation/domain"
	"gamedex/internal/services/moderation/repo"
)

// Service defines the moderation service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the moderation service
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	flights *flight.Group
	log     logger.Logger
}

// New constructs a moderation service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], flights *flight.Group, log logger.Logger) *Svc {
	if db == nil {
		panic("moderation.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("moderation.Service requires a non nil Repo binder")
	}
	if flights == nil {
		panic("moderation.Service requires a non nil flight group")
	}
	return &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		flights: flights,
		log:     log.With().Str("component", "moderation").Logger(),
	}
}

// SetFlag applies one curation flag and invalidates in-flight search
// executions so the next identical query observes the new state
func (s *Svc) SetFlag(ctx context.Context, in domain.FlagInput) (domain.FlagResult, error) {
	var greenlight, redlight bool
	switch in.Flag {
	case domain.FlagGreenlight:
		greenlight = true
	case domain.FlagRedlight:
		redlight = true
	case domain.FlagNone:
		// both cleared
	default:
		return domain.FlagResult{}, perr.InvalidArgf("unknown flag %q", in.Flag)
	}

	if err := s.Repo.SetFlags(ctx, in.GameID, greenlight, redlight); err != nil {
		return domain.FlagResult{}, err
	}

	n := s.flights.Invalidate("search:*")
	s.log.Info().
		Int64("game_id", in.GameID).
		Str("flag", in.Flag).
		Str("reason", in.Reason).
		Int("invalidated", n).
		Msg("moderation flag applied")

	return domain.FlagResult{
		GameID:      in.GameID,
		Greenlight:  greenlight,
		Redlight:    redlight,
		Invalidated: n,
	}, nil
}

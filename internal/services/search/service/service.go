// Package service contains the search coordination pipeline: normalize and
// expand the query, collapse duplicate in-flight requests, stage the primary
// store queries, decide on the external fallback, then merge, filter, score,
// and truncate
package service

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"gamedex/internal/core/freshness"
	"gamedex/internal/core/normalize"
	"gamedex/internal/core/policy"
	"gamedex/internal/core/scoring"
	"gamedex/internal/modkit/repokit"
	"gamedex/internal/platform/flight"
	"gamedex/internal/platform/logger"
	"gamedex/internal/services/search/domain"
	"gamedex/internal/services/search/repo"
)

// Config holds the tunable coordination thresholds
type Config struct {
	// AbsoluteFloor is the minimum local result count below which the
	// external fallback triggers for any query
	AbsoluteFloor int
	// FranchiseFloor is the higher minimum applied to franchise queries
	FranchiseFloor int
	// EarlyAccept short-circuits the summary query once the name query
	// alone returned this many rows
	EarlyAccept int
	// StaleAfter is the row age beyond which local data counts as stale
	StaleAfter time.Duration
	// StaleSampleRate is the fraction of stale-but-sufficient result sets
	// that still trigger a refreshing fallback, in [0,1]
	StaleSampleRate float64
	// DefaultBudget is used when the caller sends no result budget
	DefaultBudget int
	// MaxBudget clamps caller budgets from above
	MaxBudget int
	// QueryLimit is the per-stage row ceiling handed to the sources
	QueryLimit int
	// StepTimeout bounds each source call
	StepTimeout time.Duration
}

// DefaultConfig returns the thresholds the pipeline was tuned with
func DefaultConfig() Config {
	return Config{
		AbsoluteFloor:   3,
		FranchiseFloor:  5,
		EarlyAccept:     20,
		StaleAfter:      7 * 24 * time.Hour,
		StaleSampleRate: 0.2,
		DefaultBudget:   20,
		MaxBudget:       50,
		QueryLimit:      50,
		StepTimeout:     3 * time.Second,
	}
}

// Service defines the search service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the search service
type Svc struct {
	cfg  Config
	log  logger.Logger
	Repo repo.Repo
	db   repokit.TxRunner

	external domain.ExternalSource
	flights  *flight.Group

	norm   *normalize.Normalizer
	filter *policy.Filter
	scorer *scoring.Scorer
	fresh  *freshness.Classifier

	// injected for deterministic tests
	now    func() time.Time
	sample func() float64
}

// Deps carries the collaborators the coordinator stages across
type Deps struct {
	DB       repokit.TxRunner
	Binder   repokit.Binder[repo.Repo]
	External domain.ExternalSource
	Flights  *flight.Group

	Norm   *normalize.Normalizer
	Filter *policy.Filter
	Scorer *scoring.Scorer
	Fresh  *freshness.Classifier

	Log logger.Logger
}

// New constructs a search service
func New(cfg Config, d Deps) *Svc {
	if d.DB == nil {
		panic("search.Service requires a non nil TxRunner")
	}
	if d.Binder == nil {
		panic("search.Service requires a non nil Repo binder")
	}
	if d.Flights == nil {
		panic("search.Service requires a non nil flight group")
	}
	if d.Norm == nil || d.Filter == nil || d.Scorer == nil || d.Fresh == nil {
		panic("search.Service requires the core pipeline components")
	}
	return &Svc{
		cfg:      cfg,
		log:      d.Log.With().Str("component", "search").Logger(),
		Repo:     d.Binder.Bind(d.DB),
		db:       d.DB,
		external: d.External,
		flights:  d.Flights,
		norm:     d.Norm,
		filter:   d.Filter,
		scorer:   d.Scorer,
		fresh:    d.Fresh,
		now:      time.Now,
		sample:   rand.Float64,
	}
}

// Search runs one coordinated query. Identical concurrent requests share a
// single execution through the flight group
func (s *Svc) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	budget := req.Budget
	if budget <= 0 {
		budget = s.cfg.DefaultBudget
	}
	if budget > s.cfg.MaxBudget {
		budget = s.cfg.MaxBudget
	}

	query := s.norm.Normalize(req.Query)
	if query == "" {
		// malformed or empty input is an empty success, never an error
		return domain.SearchResult{Games: []domain.Game{}, Budget: budget}, nil
	}

	key := flight.Key("search", "query", query, strconv.Itoa(budget), req.Filters.Fingerprint())
	return flight.Do(s.flights, ctx, key, func(ctx context.Context) (domain.SearchResult, error) {
		return s.run(ctx, req.Query, query, req.Filters, budget)
	})
}

// FlightStats exposes the dedup counters
func (s *Svc) FlightStats(context.Context) (flight.Stats, error) {
	return s.flights.Snapshot(), nil
}

// run executes the staged pipeline for one deduplicated request
func (s *Svc) run(
	ctx context.Context, raw, query string, f domain.Filters, budget int,
) (domain.SearchResult, error) {
	variants := s.norm.ExpandVariants(raw)

	var (
		pool      []domain.Game
		sources   []string
		attempted int
		failed    int
	)

	// stage 1: primary store by name, across spelling variants
	named, err := s.step(ctx, "name", func(ctx context.Context) ([]domain.Game, error) {
		return s.queryVariants(ctx, variants, f, s.Repo.QueryByName)
	})
	attempted++
	if err != nil {
		failed++
	} else if len(named) > 0 {
		sources = append(sources, "name")
	}
	pool = append(pool, named...)

	// stage 2: primary store by summary, only when the name stage alone is
	// not clearly sufficient
	if len(pool) < s.cfg.EarlyAccept {
		summarized, err := s.step(ctx, "summary", func(ctx context.Context) ([]domain.Game, error) {
			return s.queryVariants(ctx, variants, f, s.Repo.QueryBySummary)
		})
		attempted++
		if err != nil {
			failed++
		} else if len(summarized) > 0 {
			sources = append(sources, "summary")
		}
		pool = append(pool, summarized...)
	}

	local := s.mergeDedupe(pool, nil)

	// stage 3: external fallback when local data is thin or stale
	if s.external != nil && s.shouldFallback(local, query) {
		fetched, err := s.step(ctx, "igdb", func(ctx context.Context) ([]domain.Game, error) {
			return s.external.Fetch(ctx, query, s.cfg.QueryLimit)
		})
		attempted++
		if err != nil {
			failed++
		} else if len(fetched) > 0 {
			sources = append(sources, "igdb")
			local = s.mergeDedupe(local, fetched)
		}
	}

	if attempted > 0 && failed == attempted {
		return domain.SearchResult{}, domain.ErrAllSourcesFailed
	}

	kept := s.filter.Apply(local)
	ranked := s.scorer.Rank(kept, query)

	if len(ranked) > budget {
		ranked = ranked[:budget]
	}
	games := make([]domain.Game, 0, len(ranked))
	for _, r := range ranked {
		games = append(games, r.Game)
	}
	return domain.SearchResult{Games: games, Source: strings.Join(sources, ","), Budget: budget}, nil
}

// step bounds one source call with the per-step timeout and logs failures;
// a failing step contributes zero results instead of aborting the pipeline
func (s *Svc) step(
	ctx context.Context, name string, fn func(ctx context.Context) ([]domain.Game, error),
) ([]domain.Game, error) {
	stepCtx := ctx
	if s.cfg.StepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, s.cfg.StepTimeout)
		defer cancel()
	}
	out, err := fn(stepCtx)
	if err != nil {
		s.log.Warn().Err(err).Str("step", name).Msg("search step failed")
		return nil, err
	}
	return out, nil
}

// queryVariants runs one repo query per spelling variant and concatenates.
// Variant lists are tiny (normalized form plus at most a few accents)
func (s *Svc) queryVariants(
	ctx context.Context, variants []string, f domain.Filters,
	q func(ctx context.Context, text string, f domain.Filters, limit int) ([]domain.Game, error),
) ([]domain.Game, error) {
	var out []domain.Game
	for _, v := range variants {
		rows, err := q(ctx, v, f, s.cfg.QueryLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// shouldFallback applies the floor, franchise, and staleness triggers.
// An exact local title match always suppresses the fallback
func (s *Svc) shouldFallback(local []domain.Game, query string) bool {
	for _, g := range local {
		if s.norm.Normalize(g.Name) == query {
			return false
		}
	}

	if len(local) < s.cfg.AbsoluteFloor {
		return true
	}
	if s.fresh.IsFranchiseQuery(query) && len(local) < s.cfg.FranchiseFloor {
		return true
	}

	// sufficient volume but stale content: refresh a sampled fraction so a
	// hot stale query does not hammer the rate budget
	stale := 0
	now := s.now()
	for _, g := range local {
		if s.fresh.IsStale(g, s.cfg.StaleAfter, now) {
			stale++
		}
	}
	if stale > 0 && stale*2 >= len(local) {
		return s.sample() < s.cfg.StaleSampleRate
	}
	return false
}

// mergeDedupe combines primary and secondary rows. A later row is dropped
// when an earlier one already claimed its IGDB id or its normalized name, so
// a local row that lacks an external id still absorbs the external copy of
// the same title. Primary rows are added first and win every collision;
// order of first appearance is preserved
func (s *Svc) mergeDedupe(primary, secondary []domain.Game) []domain.Game {
	out := make([]domain.Game, 0, len(primary)+len(secondary))
	byIGDB := make(map[int64]struct{}, len(primary))
	byName := make(map[string]struct{}, len(primary))

	add := func(g domain.Game) {
		name := s.norm.Normalize(g.Name)
		if g.IGDBID != nil {
			if _, dup := byIGDB[*g.IGDBID]; dup {
				return
			}
		}
		if _, dup := byName[name]; dup {
			return
		}
		if g.IGDBID != nil {
			byIGDB[*g.IGDBID] = struct{}{}
		}
		byName[name] = struct{}{}
		out = append(out, g)
	}

	for _, g := range primary {
		add(g)
	}
	for _, g := range secondary {
		add(g)
	}
	return out
}

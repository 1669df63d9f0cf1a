// Package module wires search into the API using modkit
package module

import (
	"net/http"

	"gamedex/internal/core/freshness"
	"gamedex/internal/core/gamepack"
	"gamedex/internal/core/normalize"
	"gamedex/internal/core/policy"
	"gamedex/internal/core/scoring"
	modkit "gamedex/internal/modkit"
	"gamedex/internal/modkit/httpkit"
	str "gamedex/internal/platform/strings"
	"gamedex/internal/services/search/domain"
	searchhttp "gamedex/internal/services/search/http"
	searchrepo "gamedex/internal/services/search/repo"
	searchsvc "gamedex/internal/services/search/service"
)

// Ports are the cross-module dependencies the search module consumes
type Ports struct {
	// External is the secondary catalog fallback; nil disables it
	External domain.ExternalSource
}

// Module implements the search module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc searchsvc.Service
}

// New constructs the search module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("search"), modkit.WithPrefix("/search")}, opts...)...)

	var external domain.ExternalSource
	if p, ok := b.Ports.(Ports); ok {
		external = p.External
	}

	pack := gamepack.MustLoad()
	norm := normalize.New(normalize.WithAccentVariants(pack.AccentVariants))

	svc := searchsvc.New(searchsvc.FromConfig(deps.Cfg), searchsvc.Deps{
		DB:       deps.PG,
		Binder:   searchrepo.NewPG(),
		External: external,
		Flights:  deps.Flights,
		Norm:     norm,
		Filter:   policy.New(pack, norm),
		Scorer:   scoring.New(scoring.DefaultWeights(), pack, norm),
		Fresh:    freshness.New(pack),
		Log:      deps.Log,
	})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = adaptSearchPort{svc: svc}
	m.register = func(r httpkit.Router) {
		searchhttp.Register(r, m.svc)
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Package module wires moderation into the API using modkit
package module

import (
	"net/http"

	modkit "gamedex/internal/modkit"
	"gamedex/internal/modkit/httpkit"
	str "gamedex/internal/platform/strings"
	modhttp "gamedex/internal/services/moderation/http"
	modrepo "gamedex/internal/services/moderation/repo"
	modsvc "gamedex/internal/services/moderation/service"
)

// Module implements the moderation module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc modsvc.Service
}

// New constructs the moderation module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("moderation"), modkit.WithPrefix("/moderation")}, opts...)...)

	svc := modsvc.New(deps.PG, modrepo.NewPG(), deps.Flights, deps.Log)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = adaptModerationPort{svc: svc}
	m.register = func(r httpkit.Router) {
		modhttp.Register(r, m.svc)
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

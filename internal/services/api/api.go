// Package api provides the HTTP API for the application
package api

import (
	"gamedex/internal/platform/config"
	"gamedex/internal/platform/flight"
	"gamedex/internal/platform/logger"
	phttp "gamedex/internal/platform/net/http"
	"gamedex/internal/platform/store"

	"gamedex/internal/modkit"
	"gamedex/internal/modkit/httpkit"
	"gamedex/internal/modkit/module"

	metamod "gamedex/internal/services/api/meta/module"
	moderationmod "gamedex/internal/services/moderation/module"
	searchdomain "gamedex/internal/services/search/domain"
	searchmod "gamedex/internal/services/search/module"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Store   *store.Store
	Logger  *logger.Logger
	Flights *flight.Group

	// External is the secondary catalog fallback; nil disables it
	External searchdomain.ExternalSource
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:     *opt.Logger,
		Cfg:     opt.Config,
		PG:      opt.Store.PG,
		Flights: opt.Flights,
	}

	mods := []module.Module{
		metamod.New(deps),
		searchmod.New(deps, modkit.WithPorts(searchmod.Ports{External: opt.External})),
		moderationmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

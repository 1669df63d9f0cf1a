// @title         Gamedex API
// @version       0.1.0
// @description   Catalog search, moderation, and meta endpoints

package main

import (
	"context"

	"gamedex/internal/modkit/repokit"
	"gamedex/internal/platform/config"
	"gamedex/internal/platform/flight"
	"gamedex/internal/platform/logger"
	phttp "gamedex/internal/platform/net/http"
	"gamedex/internal/platform/store"

	"gamedex/internal/services/api"
	"gamedex/internal/services/igdb"
)

func main() {
	// service-scoped config views (GAMEDEX_API_*, GAMEDEX_PGSQL_*, GAMEDEX_IGDB_*)
	root := config.New()
	apiCfg := root.Prefix("GAMEDEX_API_")
	pgCfg := root.Prefix("GAMEDEX_PGSQL_")
	igdbCfg := root.Prefix("GAMEDEX_IGDB_")

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "gamedex-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a configured backend cannot answer
	repokit.MustGuard(context.Background(), st)

	// process-wide request dedup registry
	flights := flight.New()

	// secondary catalog fallback, disabled when no client id is configured
	var external *igdb.Client
	if c := igdb.FromConfig(igdbCfg); c.ClientID != "" {
		external = igdb.New(c, *l)
	} else {
		l.Warn().Msg("igdb fallback disabled, no client id configured")
	}

	// http server (reads GAMEDEX_API_PORT)
	srv := phttp.NewServer(apiCfg)

	opts := api.Options{
		Config:  apiCfg,
		Store:   st,
		Logger:  l,
		Flights: flights,
	}
	if external != nil {
		opts.External = external
	}
	api.Mount(srv.Router(), opts)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

package modkit

import (
	"gamedex/internal/modkit/repokit"
	"gamedex/internal/platform/config"
	"gamedex/internal/platform/flight"
	"gamedex/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	Flights *flight.Group
}

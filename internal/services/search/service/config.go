package service

import (
	"gamedex/internal/platform/config"
)

// FromConfig reads the coordination thresholds from the env view, falling
// back to the recorded defaults
func FromConfig(cfg config.Conf) Config {
	d := DefaultConfig()
	return Config{
		AbsoluteFloor:   cfg.MayInt("SEARCH_ABS_FLOOR", d.AbsoluteFloor),
		FranchiseFloor:  cfg.MayInt("SEARCH_FRANCHISE_FLOOR", d.FranchiseFloor),
		EarlyAccept:     cfg.MayInt("SEARCH_EARLY_ACCEPT", d.EarlyAccept),
		StaleAfter:      cfg.MayDuration("SEARCH_STALE_AFTER", d.StaleAfter),
		StaleSampleRate: cfg.MayFloat64("SEARCH_STALE_SAMPLE_RATE", d.StaleSampleRate),
		DefaultBudget:   cfg.MayInt("SEARCH_DEFAULT_BUDGET", d.DefaultBudget),
		MaxBudget:       cfg.MayInt("SEARCH_MAX_BUDGET", d.MaxBudget),
		QueryLimit:      cfg.MayInt("SEARCH_QUERY_LIMIT", d.QueryLimit),
		StepTimeout:     cfg.MayDuration("SEARCH_STEP_TIMEOUT", d.StepTimeout),
	}
}

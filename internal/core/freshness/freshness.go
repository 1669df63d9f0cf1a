// Package freshness holds the two predicates that drive the external
// fallback decision: franchise-query detection and row staleness
package freshness

import (
	"time"

	"gamedex/internal/core/catalog"
	"gamedex/internal/core/gamepack"
)

// Classifier answers franchise and staleness questions for the coordinator
type Classifier struct {
	pack *gamepack.Pack
}

// New builds a Classifier over the franchise vocabulary
func New(pack *gamepack.Pack) *Classifier {
	return &Classifier{pack: pack}
}

// IsFranchiseQuery reports whether the normalized query names a known
// high-volume franchise. Franchise queries tolerate fewer local results
// before an external fetch triggers
func (c *Classifier) IsFranchiseQuery(query string) bool {
	return c.pack.FranchiseOf(query) != ""
}

// Franchise returns the matched franchise name, or "" when none matched
func (c *Classifier) Franchise(query string) string {
	return c.pack.FranchiseOf(query)
}

// IsStale reports whether the row's last update is older than maxAge as of
// now. Missing freshness data counts as stale, never as fresh
func (c *Classifier) IsStale(item catalog.Game, maxAge time.Duration, now time.Time) bool {
	if item.UpdatedAt == nil {
		return true
	}
	return now.Sub(*item.UpdatedAt) > maxAge
}

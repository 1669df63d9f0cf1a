// Package domain holds search types and ports
package domain

import (
	"strings"
	"time"

	"gamedex/internal/core/catalog"
)

// Game re-exports the catalog entity for callers of this service
type Game = catalog.Game

// Category re-exports the catalog taxonomy
type Category = catalog.Category

// Filters are opaque pass-through constraints applied at the store level
type Filters struct {
	Platform       string     `json:"platform,omitempty"`
	Genre          string     `json:"genre,omitempty"`
	ReleasedAfter  *time.Time `json:"released_after,omitempty"`
	ReleasedBefore *time.Time `json:"released_before,omitempty"`
}

// Fingerprint returns a canonical string for request dedup keys.
// Zero filters fingerprint to ""
func (f Filters) Fingerprint() string {
	var parts []string
	if f.Platform != "" {
		parts = append(parts, "p="+f.Platform)
	}
	if f.Genre != "" {
		parts = append(parts, "g="+f.Genre)
	}
	if f.ReleasedAfter != nil {
		parts = append(parts, "ra="+f.ReleasedAfter.UTC().Format(time.RFC3339))
	}
	if f.ReleasedBefore != nil {
		parts = append(parts, "rb="+f.ReleasedBefore.UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, ",")
}

// SearchRequest is one caller query, never persisted
type SearchRequest struct {
	Query   string  `json:"query"`
	Filters Filters `json:"filters"`
	Budget  int     `json:"budget" validate:"gte=0"`
}

// SearchResult is what the caller receives. Source names the stages that
// contributed data, comma-joined ("name", "summary", "igdb"). Budget echoes
// the effective result budget after defaulting and clamping, so a caller can
// tell when its requested budget was reduced
type SearchResult struct {
	Games  []Game `json:"games"`
	Source string `json:"source"`
	Budget int    `json:"budget"`
}

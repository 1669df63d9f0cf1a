// Package catalog defines the game entity shared by the search core.
// Rows are produced by an external ingestion process and are read-only here
package catalog

import (
	"encoding/json"
	"time"
)

// Category tags what kind of release a row is
type Category int

// Categories mirror the upstream catalog taxonomy
const (
	CategoryUnknown Category = iota
	CategoryMain
	CategoryDLC
	CategoryExpansion
	CategoryStandaloneExpansion
	CategoryRemakePort
	CategoryMod
	CategoryOther
)

// String returns the storage form of the category
func (c Category) String() string {
	switch c {
	case CategoryMain:
		return "main"
	case CategoryDLC:
		return "dlc"
	case CategoryExpansion:
		return "expansion"
	case CategoryStandaloneExpansion:
		return "standalone_expansion"
	case CategoryRemakePort:
		return "remake_port"
	case CategoryMod:
		return "mod"
	case CategoryOther:
		return "other"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the category as its storage string
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the storage string form
func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}

// ParseCategory maps a storage string to a Category; unknown strings stay Unknown
func ParseCategory(s string) Category {
	switch s {
	case "main":
		return CategoryMain
	case "dlc":
		return CategoryDLC
	case "expansion":
		return CategoryExpansion
	case "standalone_expansion":
		return CategoryStandaloneExpansion
	case "remake_port":
		return CategoryRemakePort
	case "mod":
		return CategoryMod
	case "other":
		return CategoryOther
	default:
		return CategoryUnknown
	}
}

// Game is one catalog row
type Game struct {
	ID     int64  `json:"id"`
	IGDBID *int64 `json:"igdb_id,omitempty"` // assigned once by the external catalog, never reused
	Name   string `json:"name"`
	Slug   string `json:"slug,omitempty"`

	Category    Category   `json:"category"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Developer   string     `json:"developer,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	Summary     string     `json:"summary,omitempty"`

	// Quality signals from the external catalog, all optional
	Rating      *float64 `json:"rating,omitempty"` // aggregate, 0..100
	RatingCount *int     `json:"rating_count,omitempty"`
	Follows     *int     `json:"follows,omitempty"`
	Hypes       *int     `json:"hypes,omitempty"`

	// Manual curation. Redlight always wins over greenlight
	Greenlight bool `json:"greenlight,omitempty"`
	Redlight   bool `json:"-"`

	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

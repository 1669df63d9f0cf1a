// Package domain holds moderation types and ports
package domain

// Flag values a moderator can apply to a catalog row
const (
	FlagGreenlight = "greenlight"
	FlagRedlight   = "redlight"
	FlagNone       = "none"
)

// FlagInput applies one curation flag. Greenlight and redlight are mutually
// exclusive; setting either clears the other, "none" clears both
type FlagInput struct {
	GameID int64  `json:"game_id" validate:"required,gt=0"`
	Flag   string `json:"flag" validate:"required,oneof=greenlight redlight none"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// FlagResult reports the applied state
type FlagResult struct {
	GameID     int64 `json:"game_id"`
	Greenlight bool  `json:"greenlight"`
	Redlight   bool  `json:"redlight"`
	// Invalidated is how many in-flight search executions were detached
	// so later identical queries see the new flags
	Invalidated int `json:"invalidated"`
}

// Package policy implements the content filter that removes unauthorized
// derivative works and trivial add-on content from search results.
// All judgement calls live in the gamepack vocabulary so policy can be
// retuned without touching this control flow
package policy

import (
	"gamedex/internal/core/catalog"
	"gamedex/internal/core/gamepack"
	"gamedex/internal/core/normalize"
)

// minRatedAddOn is the minimum-scope heuristic for DLC rows with no
// expansion keyword: an add-on rated by this many users is substantial
// enough to surface
const minRatedAddOn = 10

// Filter applies the content policy to result sets
type Filter struct {
	pack *gamepack.Pack
	norm *normalize.Normalizer
}

// New builds a Filter over the given vocabulary and normalizer
func New(pack *gamepack.Pack, norm *normalize.Normalizer) *Filter {
	return &Filter{pack: pack, norm: norm}
}

// Apply returns the retained items in their original order. It is pure:
// the input slice is never mutated
func (f *Filter) Apply(items []catalog.Game) []catalog.Game {
	out := make([]catalog.Game, 0, len(items))
	for _, it := range items {
		if f.keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// keep composes the sub-policies; an item is dropped if any rejects it
func (f *Filter) keep(it catalog.Game) bool {
	// Suppressed rows never surface, whatever the source layer let through
	if it.Redlight {
		return false
	}
	if f.isDerivative(it) {
		return false
	}
	if f.isTrivialAddOn(it) {
		return false
	}
	return true
}

// isDerivative rejects mod and fan-work rows whose name or credits carry
// fan-content markers. A spoofed official publisher string does not waive
// the rejection; the category tag plus any keyword hit is sufficient
func (f *Filter) isDerivative(it catalog.Game) bool {
	if it.Category != catalog.CategoryMod {
		return false
	}
	name := f.norm.Normalize(it.Name)
	if f.pack.MatchesFan(name) || f.pack.MatchesEReader(name) {
		return true
	}
	if dev := f.norm.Normalize(it.Developer); dev != "" && f.pack.MatchesFan(dev) {
		return true
	}
	if pub := f.norm.Normalize(it.Publisher); pub != "" && f.pack.MatchesFan(pub) {
		return true
	}
	return false
}

// isTrivialAddOn drops DLC rows unless they look like a substantial
// expansion. Full and standalone expansions always pass, as does anything
// whose category is unknown (missing data defaults to keep)
func (f *Filter) isTrivialAddOn(it catalog.Game) bool {
	if it.Category != catalog.CategoryDLC {
		return false
	}
	if f.pack.MatchesExpansion(f.norm.Normalize(it.Summary)) {
		return false
	}
	if f.pack.MatchesExpansion(f.norm.Normalize(it.Name)) {
		return false
	}
	// Minimum-scope heuristic: widely rated add-ons are not cosmetic packs
	if it.RatingCount != nil && *it.RatingCount >= minRatedAddOn {
		return false
	}
	return true
}

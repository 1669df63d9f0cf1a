// Package gamepack loads and compiles the curation vocabulary from the
// embedded rules.json. It prepares keyword sets and regex patterns for the
// policy filter, the scorer, and the freshness heuristics
package gamepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed rules.json
var embedded []byte

type rawPack struct {
	Version           int               `json:"version"`
	Meta              map[string]any    `json:"meta"`
	FanKeywords       []string          `json:"fan_keywords"`
	FanPatterns       []string          `json:"fan_patterns"`
	EReaderKeywords   []string          `json:"ereader_keywords"`
	ExpansionKeywords []string          `json:"expansion_keywords"`
	Franchises        []string          `json:"franchises"`
	Articles          []string          `json:"articles"`
	AccentVariants    map[string]string `json:"accent_variants"`
}

// Pack is the compiled curation vocabulary.
// All string sets hold normalized (lowercased, accent-free) terms
type Pack struct {
	Version int
	Meta    map[string]any

	// Fan-made and derivative-content markers
	FanKeywords []string
	FanPatterns []*regexp.Regexp

	// Promotional mini-game markers (e-Reader card era releases)
	EReaderKeywords []string

	// Substantial-expansion markers that let a DLC row through the filter
	ExpansionKeywords []string

	// Known franchise names, longest first so multiword names match before
	// their prefixes
	Franchises []string

	// Leading articles ignored by near-exact title matching
	Articles map[string]struct{}

	// Normalized token -> accented spelling, consumed by the normalizer
	AccentVariants map[string]string
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("gamepack: parse rules.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("gamepack: unsupported rules.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:           rp.Version,
		Meta:              rp.Meta,
		FanKeywords:       cleanSet(rp.FanKeywords),
		EReaderKeywords:   cleanSet(rp.EReaderKeywords),
		ExpansionKeywords: cleanSet(rp.ExpansionKeywords),
		Franchises:        cleanSet(rp.Franchises),
		Articles:          make(map[string]struct{}, len(rp.Articles)),
		AccentVariants:    make(map[string]string, len(rp.AccentVariants)),
	}

	for _, pat := range rp.FanPatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("gamepack: compile %q: %w", pat, err)
		}
		p.FanPatterns = append(p.FanPatterns, re)
	}

	for _, a := range rp.Articles {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			p.Articles[a] = struct{}{}
		}
	}

	for k, v := range rp.AccentVariants {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			p.AccentVariants[k] = v
		}
	}

	// Longest-first so "final fantasy" wins over "final"
	sort.Slice(p.Franchises, func(i, j int) bool {
		if len(p.Franchises[i]) != len(p.Franchises[j]) {
			return len(p.Franchises[i]) > len(p.Franchises[j])
		}
		return p.Franchises[i] < p.Franchises[j]
	})

	return p, nil
}

// MustLoad panics on a bad embedded pack (startup-time programmer error)
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// MatchesFan reports whether a normalized title carries a fan-content marker
func (p *Pack) MatchesFan(title string) bool {
	for _, kw := range p.FanKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	for _, re := range p.FanPatterns {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// MatchesEReader reports whether a normalized title looks like a promotional
// card mini-game release
func (p *Pack) MatchesEReader(title string) bool {
	for _, kw := range p.EReaderKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	// Trailing "-e" marks individual card releases ("Mario Party-e")
	return strings.HasSuffix(title, "-e")
}

// MatchesExpansion reports whether normalized text signals a substantial
// expansion rather than cosmetic DLC
func (p *Pack) MatchesExpansion(text string) bool {
	for _, kw := range p.ExpansionKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// FranchiseOf returns the longest franchise name contained in the normalized
// query, or "" when the query names no known franchise
func (p *Pack) FranchiseOf(query string) string {
	for _, f := range p.Franchises {
		if strings.Contains(query, f) {
			return f
		}
	}
	return ""
}

// StripArticle removes one leading article from a normalized title
func (p *Pack) StripArticle(title string) string {
	i := strings.IndexByte(title, ' ')
	if i <= 0 {
		return title
	}
	if _, ok := p.Articles[title[:i]]; ok {
		return title[i+1:]
	}
	return title
}

// cleanSet lowercases, trims, dedupes, and sorts for deterministic iteration
func cleanSet(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

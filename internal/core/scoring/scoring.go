// Package scoring ranks catalog items against a normalized query.
// Scores compose three tiers: a dominant text-match term, a bounded
// fame bonus that refines but never inverts a text-tier ordering, and a
// curation override that outranks everything else
package scoring

import (
	"sort"
	"strings"

	"gamedex/internal/core/catalog"
	"gamedex/internal/core/gamepack"
	"gamedex/internal/core/normalize"
)

// Weights holds the tunable scoring constants. Zero value is unusable;
// start from DefaultWeights
type Weights struct {
	Exact        float64 // full-title exact match
	ArticleExact float64 // exact ignoring a leading article
	QueryPrefix  float64 // query is a prefix of the title
	Truncation   float64 // title is a prefix of the query
	ContainsMax  float64 // ceiling for substring matches, scaled by length ratio

	// Word-level match bands, applied to the matched-word ratio
	WordHigh float64 // ratio >= 0.8
	WordMid  float64 // ratio >= 0.5
	WordLow  float64 // ratio >= 0.3

	// FameCap bounds the summed fame bonus. It must stay below the smallest
	// gap between any two text tiers above, or fame could reorder them
	FameCap     float64
	Greenlight  float64 // curation override
	RatingScale float64 // rating/100 * RatingScale
}

// DefaultWeights mirror the tuning the ranking was validated with
func DefaultWeights() Weights {
	return Weights{
		Exact:        100,
		ArticleExact: 95,
		QueryPrefix:  80,
		Truncation:   70,
		ContainsMax:  60,
		WordHigh:     50,
		WordMid:      35,
		WordLow:      20,
		FameCap:      4,
		Greenlight:   1000,
		RatingScale:  6,
	}
}

// Scorer computes relevance scores. Safe for concurrent use
type Scorer struct {
	w    Weights
	pack *gamepack.Pack
	norm *normalize.Normalizer
}

// New builds a Scorer
func New(w Weights, pack *gamepack.Pack, norm *normalize.Normalizer) *Scorer {
	return &Scorer{w: w, pack: pack, norm: norm}
}

// Scored pairs an item with its transient score for one query
type Scored struct {
	Game  catalog.Game
	Score float64
}

// Score returns the deterministic relevance score of item against the
// already-normalized query
func (s *Scorer) Score(item catalog.Game, query string) float64 {
	title := s.norm.Normalize(item.Name)

	total := s.textScore(title, query) + s.fameScore(item)
	if item.Greenlight {
		total += s.w.Greenlight
	}
	return total
}

// Rank scores all items and sorts them best first. Ties break on name then
// internal id so identical inputs always produce identical output order
func (s *Scorer) Rank(items []catalog.Game, query string) []Scored {
	out := make([]Scored, 0, len(items))
	for _, it := range items {
		out = append(out, Scored{Game: it, Score: s.Score(it, query)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Game.Name != out[j].Game.Name {
			return out[i].Game.Name < out[j].Game.Name
		}
		return out[i].Game.ID < out[j].Game.ID
	})
	return out
}

// textScore evaluates the text-match tiers in precedence order; the first
// tier that applies wins
func (s *Scorer) textScore(title, query string) float64 {
	if title == "" || query == "" {
		return 0
	}
	if title == query {
		return s.w.Exact
	}
	if s.pack.StripArticle(title) == s.pack.StripArticle(query) {
		return s.w.ArticleExact
	}
	if strings.HasPrefix(title, query) {
		return s.w.QueryPrefix
	}
	if strings.HasPrefix(query, title) {
		return s.w.Truncation
	}
	if strings.Contains(title, query) {
		// Favor titles that are mostly the query over titles that merely
		// contain it as a fragment
		return s.w.ContainsMax * float64(len(query)) / float64(len(title))
	}
	return s.wordScore(title, query)
}

// wordScore gives exact word matches full credit and partial (substring)
// word matches half credit, then maps the per-query-word ratio through
// descending bands
func (s *Scorer) wordScore(title, query string) float64 {
	qWords := strings.Fields(query)
	if len(qWords) == 0 {
		return 0
	}
	tWords := strings.Fields(title)

	var credit float64
	for _, qw := range qWords {
		best := 0.0
		for _, tw := range tWords {
			if qw == tw {
				best = 1.0
				break
			}
			if best < 0.5 && (strings.Contains(tw, qw) || strings.Contains(qw, tw)) {
				best = 0.5
			}
		}
		credit += best
	}

	ratio := credit / float64(len(qWords))
	switch {
	case ratio >= 0.8:
		return s.w.WordHigh
	case ratio >= 0.5:
		return s.w.WordMid
	case ratio >= 0.3:
		return s.w.WordLow
	default:
		return 0
	}
}

// fameScore sums the bounded quality and popularity bonuses
func (s *Scorer) fameScore(item catalog.Game) float64 {
	var bonus float64

	switch {
	case item.Rating != nil:
		bonus += *item.Rating / 100 * s.w.RatingScale
	case item.Follows != nil:
		// No rating yet; fall back to a muted popularity signal
		bonus += followBand(*item.Follows) / 2
	}

	if item.RatingCount != nil {
		switch n := *item.RatingCount; {
		case n >= 1000:
			bonus += 3
		case n >= 100:
			bonus += 2
		case n >= 10:
			bonus += 1
		}
	}
	if item.Follows != nil {
		bonus += followBand(*item.Follows)
	}
	if item.Hypes != nil {
		switch n := *item.Hypes; {
		case n >= 100:
			bonus += 2
		case n >= 10:
			bonus += 1
		}
	}

	if bonus > s.w.FameCap {
		bonus = s.w.FameCap
	}
	return bonus
}

func followBand(n int) float64 {
	switch {
	case n >= 500_000:
		return 3
	case n >= 50_000:
		return 2
	case n >= 5_000:
		return 1
	default:
		return 0
	}
}

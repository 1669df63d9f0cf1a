package scoring

import (
	"testing"

	"gamedex/internal/core/catalog"
	"gamedex/internal/core/gamepack"
	"gamedex/internal/core/normalize"
)

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	pack, err := gamepack.Load()
	if err != nil {
		t.Fatalf("gamepack.Load(): %v", err)
	}
	return New(DefaultWeights(), pack, normalize.New())
}

func game(name string) catalog.Game { return catalog.Game{Name: name} }

func TestScore_TextTiers(t *testing.T) {
	s := newScorer(t)
	q := "pokemon blue"

	exact := s.Score(game("Pokémon Blue"), q)
	article := s.Score(game("The Pokemon Blue"), q)
	prefix := s.Score(game("Pokemon Blue Version"), q)
	trunc := s.Score(game("Pokemon"), q)
	contains := s.Score(game("Super Pokemon Blue Adventures"), q)
	words := s.Score(game("Blue Pokemon"), q)
	miss := s.Score(game("Halo Infinite"), q)

	order := []struct {
		name string
		hi   float64
		lo   float64
	}{
		{"exact > article", exact, article},
		{"article > prefix", article, prefix},
		{"prefix > truncation", prefix, trunc},
		{"truncation > contains", trunc, contains},
		{"contains > 0", contains, 0},
		{"words > 0", words, 0},
	}
	for _, o := range order {
		if o.hi <= o.lo {
			t.Fatalf("%s violated: %v <= %v", o.name, o.hi, o.lo)
		}
	}
	if miss != 0 {
		t.Fatalf("unrelated title scored %v, want 0", miss)
	}
}

func TestScore_ContainsScalesWithRatio(t *testing.T) {
	s := newScorer(t)
	q := "mario kart"

	short := s.Score(game("Super Mario Kart"), q)
	long := s.Score(game("Super Mario Kart Ultimate Championship Edition"), q)
	if short <= long {
		t.Fatalf("shorter containing title should outrank longer: %v <= %v", short, long)
	}
}

func TestScore_FameRefinesButNeverInverts(t *testing.T) {
	s := newScorer(t)
	q := "zelda"

	rating := 99.0
	count := 5000
	follows := 900000
	hypes := 500
	famous := catalog.Game{
		Name: "Zelda Chronicles", // word-band match
		Rating: &rating, RatingCount: &count, Follows: &follows, Hypes: &hypes,
	}
	exactPlain := game("Zelda")

	if s.Score(famous, q) >= s.Score(exactPlain, q) {
		t.Fatalf("fame bonus inverted a text-tier ordering")
	}

	// Same text tier: fame breaks the tie
	plain := game("Zelda Chronicles")
	if s.Score(famous, q) <= s.Score(plain, q) {
		t.Fatalf("fame bonus had no effect within a tier")
	}
}

func TestScore_FameStaysBelowAdjacentTierGaps(t *testing.T) {
	s := newScorer(t)
	q := "zelda"

	// Maxed-out fame signals on every tier below exact
	rating := 100.0
	count := 100000
	follows := 2000000
	hypes := 9000
	maxFame := catalog.Game{Rating: &rating, RatingCount: &count, Follows: &follows, Hypes: &hypes}

	articleFamous := maxFame
	articleFamous.Name = "The Zelda"
	if s.Score(articleFamous, q) >= s.Score(game("Zelda"), q) {
		t.Fatalf("famous article-exact outranked a plain exact match")
	}

	truncFamous := maxFame
	truncFamous.Name = "Zelda Chron"
	q2 := "zelda chronicles"
	if s.Score(truncFamous, q2) >= s.Score(game("Zelda Chronicles Deluxe"), q2) {
		t.Fatalf("famous truncation match outranked a plain prefix match")
	}
}

func TestScore_GreenlightOverride(t *testing.T) {
	s := newScorer(t)
	q := "pokemon blue"

	curated := catalog.Game{Name: "Pokemon Blue Kaizo Edition", Greenlight: true}
	exact := game("Pokemon Blue")

	if s.Score(curated, q) <= s.Score(exact, q) {
		t.Fatalf("greenlight must outrank any non-curated score")
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := newScorer(t)
	r := 80.0
	it := catalog.Game{Name: "Final Fantasy VII", Rating: &r}

	first := s.Score(it, "final fantasy")
	for i := 0; i < 50; i++ {
		if got := s.Score(it, "final fantasy"); got != first {
			t.Fatalf("score drifted: %v != %v", got, first)
		}
	}
}

func TestRank_StableOrder(t *testing.T) {
	s := newScorer(t)

	items := []catalog.Game{
		{ID: 2, Name: "Pokemon Blue Version"},
		{ID: 1, Name: "Pokemon Blue"},
		{ID: 3, Name: "Pokemon Red"},
		{ID: 4, Name: "Pokemon Blue"}, // same name as 1, lower tiebreak id wins
	}
	ranked := s.Rank(items, "pokemon blue")

	wantIDs := []int64{1, 4, 2, 3}
	for i, id := range wantIDs {
		if ranked[i].Game.ID != id {
			t.Fatalf("ranked[%d].ID = %d, want %d (full: %+v)", i, ranked[i].Game.ID, id, ranked)
		}
	}
}

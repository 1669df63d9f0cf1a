package policy

import (
	"testing"

	"gamedex/internal/core/catalog"
	"gamedex/internal/core/gamepack"
	"gamedex/internal/core/normalize"
)

func newFilter(t *testing.T) *Filter {
	t.Helper()
	pack, err := gamepack.Load()
	if err != nil {
		t.Fatalf("gamepack.Load(): %v", err)
	}
	return New(pack, normalize.New())
}

func intPtr(v int) *int { return &v }

func TestApply_DerivativeRejection(t *testing.T) {
	f := newFilter(t)

	// Publisher spoofing does not waive the rejection
	in := []catalog.Game{
		{ID: 1, Name: "Pokemon Blue", Category: catalog.CategoryMain},
		{ID: 2, Name: "Super Mario ROM Hack", Category: catalog.CategoryMod, Publisher: "Nintendo"},
		{ID: 3, Name: "Metroid Fan Game", Category: catalog.CategoryMod},
		{ID: 4, Name: "Mario Party-e", Category: catalog.CategoryMod},
		{ID: 5, Name: "Pokemon Blue Collector's Card", Category: catalog.CategoryMod},
	}
	out := f.Apply(in)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("Apply = %+v, want only id 1", out)
	}
}

func TestApply_ModWithoutKeywordsKept(t *testing.T) {
	f := newFilter(t)

	// Category alone is advisory; no keyword hit means keep
	in := []catalog.Game{
		{ID: 5, Name: "Black Mesa", Category: catalog.CategoryMod},
	}
	if out := f.Apply(in); len(out) != 1 {
		t.Fatalf("expected mod without fan markers to be kept, got %+v", out)
	}
}

func TestApply_DLCSuppression(t *testing.T) {
	f := newFilter(t)

	in := []catalog.Game{
		{ID: 10, Name: "Shadowbringers", Category: catalog.CategoryDLC,
			Summary: "A massive expansion adding a new region and dozens of hours of content"},
		{ID: 11, Name: "Weapon Skin Bundle", Category: catalog.CategoryDLC,
			Summary: "A cosmetic pack of weapon skins"},
		{ID: 12, Name: "Artorias of the Abyss", Category: catalog.CategoryDLC,
			Summary: "New areas and bosses", RatingCount: intPtr(250)},
		{ID: 13, Name: "The Frozen Wilds", Category: catalog.CategoryExpansion,
			Summary: "cosmetic"},
		{ID: 14, Name: "Blood and Wine", Category: catalog.CategoryStandaloneExpansion},
	}
	out := f.Apply(in)

	got := make(map[int64]bool, len(out))
	for _, it := range out {
		got[it.ID] = true
	}
	for _, want := range []int64{10, 12, 13, 14} {
		if !got[want] {
			t.Fatalf("expected id %d retained, got %+v", want, out)
		}
	}
	if got[11] {
		t.Fatalf("cosmetic DLC id 11 should have been dropped")
	}
}

func TestApply_RedlightAlwaysDropped(t *testing.T) {
	f := newFilter(t)

	in := []catalog.Game{
		{ID: 20, Name: "Pokemon Blue", Category: catalog.CategoryMain, Redlight: true, Greenlight: true},
	}
	if out := f.Apply(in); len(out) != 0 {
		t.Fatalf("redlight row surfaced: %+v", out)
	}
}

func TestApply_MissingCategoryKept(t *testing.T) {
	f := newFilter(t)

	in := []catalog.Game{
		{ID: 30, Name: "Some Obscure Fan Game"}, // CategoryUnknown
	}
	if out := f.Apply(in); len(out) != 1 {
		t.Fatalf("expected unknown-category row kept, got %+v", out)
	}
}

func TestApply_OrderPreservedAndInputUntouched(t *testing.T) {
	f := newFilter(t)

	in := []catalog.Game{
		{ID: 3, Name: "c", Category: catalog.CategoryMain},
		{ID: 1, Name: "a", Category: catalog.CategoryMain},
		{ID: 2, Name: "b rom hack", Category: catalog.CategoryMod},
		{ID: 4, Name: "d", Category: catalog.CategoryMain},
	}
	out := f.Apply(in)
	wantIDs := []int64{3, 1, 4}
	if len(out) != len(wantIDs) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(wantIDs))
	}
	for i, id := range wantIDs {
		if out[i].ID != id {
			t.Fatalf("out[%d].ID = %d, want %d", i, out[i].ID, id)
		}
	}
	if len(in) != 4 || in[2].ID != 2 {
		t.Fatalf("input slice mutated: %+v", in)
	}
}

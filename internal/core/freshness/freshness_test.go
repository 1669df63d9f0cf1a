package freshness

import (
	"testing"
	"time"

	"gamedex/internal/core/catalog"
	"gamedex/internal/core/gamepack"
)

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	pack, err := gamepack.Load()
	if err != nil {
		t.Fatalf("gamepack.Load(): %v", err)
	}
	return New(pack)
}

func TestIsFranchiseQuery(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		query string
		want  bool
	}{
		{"pokemon blue", true},
		{"the legend of zelda", true},
		{"final fantasy vii remake", true},
		{"hollow knight", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := c.IsFranchiseQuery(tc.query); got != tc.want {
			t.Fatalf("IsFranchiseQuery(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestIsStale(t *testing.T) {
	c := newClassifier(t)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	maxAge := 7 * 24 * time.Hour

	fresh := now.Add(-2 * 24 * time.Hour)
	old := now.Add(-10 * 24 * time.Hour)

	if c.IsStale(catalog.Game{UpdatedAt: &fresh}, maxAge, now) {
		t.Fatalf("2d old row reported stale at 7d window")
	}
	if !c.IsStale(catalog.Game{UpdatedAt: &old}, maxAge, now) {
		t.Fatalf("10d old row reported fresh at 7d window")
	}
	if !c.IsStale(catalog.Game{}, maxAge, now) {
		t.Fatalf("row without UpdatedAt must be stale")
	}
}

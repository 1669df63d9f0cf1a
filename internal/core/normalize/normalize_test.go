package normalize

import (
	"reflect"
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "chrono trigger",
			out:  "chrono trigger",
		},
		{
			name: "empty stays empty",
			in:   "",
			out:  "",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'z', 'e', 'l', 0x80, 'd', 'a'}),
			out:  "zelda",
		},
		{
			name: "case fold",
			in:   "POKEMON Blue",
			out:  "pokemon blue",
		},
		{
			name: "accent strip composed",
			in:   "Pokémon Blue",
			out:  "pokemon blue",
		},
		{
			name: "accent strip combining",
			in:   "Pokémon", // combining acute accent
			out:  "pokemon",
		},
		{
			name: "remove zero-widths",
			in:   "ma​rio‍ kart",
			out:  "mario kart",
		},
		{
			name: "width fold fullwidth",
			in:   "ＦＩＮＡＬ fantasy",
			out:  "final fantasy",
		},
		{
			name: "trademark symbols",
			in:   "Sonic™ the Hedgehog® © SEGA",
			out:  "sonic the hedgehog sega",
		},
		{
			name: "collapse whitespace",
			in:   "super\t\tmetroid\n  prime",
			out:  "super metroid prime",
		},
		{
			name: "combined",
			in:   "  Ｐokémon™​  Snap \t",
			out:  "pokemon snap",
		},
		{
			name: "idempotent",
			in:   n.Normalize("Ｍario™  Golf́  "),
			out:  "mario golf",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// Idempotence check: normalize again should be identical
			got2 := n.Normalize(got)
			if got2 != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, got2)
			}
		})
	}
}

func TestExpandVariants(t *testing.T) {
	n := New(WithAccentVariants(map[string]string{"pokemon": "pokémon"}))

	got := n.ExpandVariants("Pokémon Blue")
	want := []string{"pokemon blue", "pokémon blue"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandVariants = %v, want %v", got, want)
	}

	// No vocabulary hit means just the normalized form
	got = n.ExpandVariants("Chrono Trigger")
	want = []string{"chrono trigger"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandVariants = %v, want %v", got, want)
	}

	// Empty input yields nil
	if got := n.ExpandVariants("   "); got != nil {
		t.Fatalf("ExpandVariants(blank) = %v, want nil", got)
	}
}

func TestCollapseSpaces(t *testing.T) {
	in := " \t a \n b   c \r\n "
	want := "a b c"
	got := collapseSpaces(in)
	if got != want {
		t.Fatalf("collapseSpaces(%q) = %q, want %q", in, got, want)
	}
}

// Package normalize provides a deterministic text normalizer for catalog
// titles and queries
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Strip trademark copyright and registered symbols
// 3 Unicode NFKD decomposition
// 4 Case folding
// 5 Remove combining marks (é -> e) and zero-width format chars
// 6 Width fold fullwidth to ASCII
// 7 Collapse whitespace to single spaces and trim
package normalize

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct {
	// variants maps a normalized token to its accented spelling, so a query
	// in either form can retrieve rows indexed under either form
	variants map[string]string
}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Option mutates a Normalizer during New
type Option func(*Normalizer)

// WithAccentVariants installs the accent vocabulary used by ExpandVariants.
// Keys must already be in normalized form
func WithAccentVariants(m map[string]string) Option {
	return func(n *Normalizer) { n.variants = m }
}

// New constructs a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Normalize returns the normalized form of s following the pipeline above.
// Empty input yields empty output, never an error
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2 strip marketing symbols. Must happen before NFKD, which decomposes
	// U+2122 into the literal letters "tm"
	s = stripSymbols(s)

	// 3-6 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 7 collapse whitespace and trim
	ns = collapseSpaces(ns)

	return ns
}

// ExpandVariants returns the normalized query plus one variant per accent
// vocabulary token present in it, so both spellings reach the store.
// Output order is deterministic: normalized form first, variants sorted
func (n *Normalizer) ExpandVariants(s string) []string {
	base := n.Normalize(s)
	if base == "" {
		return nil
	}

	var extra []string
	for token, accented := range n.variants {
		if !strings.Contains(base, token) {
			continue
		}
		v := strings.ReplaceAll(base, token, accented)
		if v != base {
			extra = append(extra, v)
		}
	}
	sort.Strings(extra)

	out := make([]string, 0, 1+len(extra))
	out = append(out, base)
	out = append(out, extra...)
	return out
}

// stripSymbols removes trademark, copyright, and registered marks
func stripSymbols(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '™', '©', '®': // ™ © ®
			return -1
		}
		return r
	}, s)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

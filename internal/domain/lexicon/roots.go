package lexicon

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// RootSet is the universe of known morphemes derived from a Lexicon: every
// alternate spelling of every headword plus every hyphen-separated component
// of those alternates. Members are stored lowercased and trimmed.
//
// A RootSet is filled once during construction and only read afterwards;
// concurrent Contains calls are safe because nothing writes to it.
type RootSet struct {
	set mapset.Set[string]
}

// BuildRoots derives the RootSet of lex.
func BuildRoots(lex *Lexicon) *RootSet {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, e := range lex.All() {
		for _, alt := range Alternates(e.Headword) {
			set.Add(alt)
			for _, part := range Components(alt) {
				set.Add(part)
			}
		}
	}
	return &RootSet{set: set}
}

// NewRootSet builds a RootSet from explicit roots. Used by tests and tools
// that segment against a synthetic vocabulary.
func NewRootSet(roots ...string) *RootSet {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, r := range roots {
		set.Add(Normalize(r))
	}
	return &RootSet{set: set}
}

// Contains reports whether s is a known root (case-insensitive, trimmed).
func (r *RootSet) Contains(s string) bool {
	return r.set.ContainsOne(Normalize(s))
}

// Has reports whether s is a root exactly as given, without normalizing.
// Segmentation probes lowercased substrings through Has so that a fragment
// with a leading space never matches a trimmed root.
func (r *RootSet) Has(s string) bool {
	return r.set.ContainsOne(s)
}

// Len returns the number of distinct roots, including the empty alternate
// produced by a headword like "a/" if one exists.
func (r *RootSet) Len() int {
	return r.set.Cardinality()
}

// Sorted returns all non-empty roots in lexical order.
func (r *RootSet) Sorted() []string {
	out := make([]string, 0, r.set.Cardinality())
	for _, s := range r.set.ToSlice() {
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

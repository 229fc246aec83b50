// Package ahocorasick finds every known root inside a word in one pass using
// an Aho-Corasick automaton. It wraps the petar-dambovaliev/aho-corasick
// library for O(n + m + z) matching.
package ahocorasick

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/corey/vacha/internal/ports"
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Scanner implements ports.RootScanner over a fixed root vocabulary.
// The automaton is immutable once built; Occurrences is safe for concurrent use.
type Scanner struct {
	automaton aho.AhoCorasick
	patterns  []string
}

var _ ports.RootScanner = (*Scanner)(nil)

// NewScanner compiles roots into an automaton. Roots shorter than
// ports.MinRootLen runes are never reported, so they are left out.
func NewScanner(roots []string) *Scanner {
	p := make([]string, 0, len(roots))
	for _, r := range roots {
		if utf8.RuneCountInString(r) >= ports.MinRootLen {
			p = append(p, r)
		}
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	return &Scanner{
		automaton: builder.Build(p),
		patterns:  p,
	}
}

// Occurrences implements ports.RootScanner. The automaton reports byte
// offsets; they are mapped back to rune offsets here.
func (s *Scanner) Occurrences(word string) []ports.Occurrence {
	if len(s.patterns) == 0 || word == "" {
		return nil
	}
	content := []byte(word)

	// runeAt[b] is the rune index of the rune starting at byte b, and
	// runeAt[len] is the total rune count.
	runeAt := make([]int, len(content)+1)
	n := 0
	for b := range word {
		runeAt[b] = n
		n++
	}
	runeAt[len(content)] = n

	iter := s.automaton.IterOverlappingByte(content)
	var occ []ports.Occurrence
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		occ = append(occ, ports.Occurrence{
			Start: runeAt[m.Start()],
			End:   runeAt[m.End()],
		})
	}

	slices.SortFunc(occ, func(a, b ports.Occurrence) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
	return slices.Compact(occ)
}

// PatternCount implements ports.RootScanner.
func (s *Scanner) PatternCount() int {
	return len(s.patterns)
}

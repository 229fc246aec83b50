package segment

import (
	"unicode/utf8"

	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/corey/vacha/internal/ports"
)

// SetScanner is the reference ports.RootScanner: it probes every substring
// of at least ports.MinRootLen runes against the RootSet.
type SetScanner struct {
	roots    *lexicon.RootSet
	patterns int
}

// NewSetScanner creates a scanner over roots.
func NewSetScanner(roots *lexicon.RootSet) *SetScanner {
	n := 0
	for _, r := range roots.Sorted() {
		if utf8.RuneCountInString(r) >= ports.MinRootLen {
			n++
		}
	}
	return &SetScanner{roots: roots, patterns: n}
}

// PatternCount implements ports.RootScanner.
func (s *SetScanner) PatternCount() int {
	return s.patterns
}

// Occurrences implements ports.RootScanner.
func (s *SetScanner) Occurrences(word string) []ports.Occurrence {
	runes := []rune(word)
	var occ []ports.Occurrence
	for start := 0; start < len(runes); start++ {
		for end := start + ports.MinRootLen; end <= len(runes); end++ {
			if s.roots.Has(string(runes[start:end])) {
				occ = append(occ, ports.Occurrence{Start: start, End: end})
			}
		}
	}
	return occ
}

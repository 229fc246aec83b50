package ports

// Occurrence is one root found inside a word, in rune offsets.
// Start is inclusive, End is exclusive.
type Occurrence struct {
	Start int
	End   int
}

// RootScanner finds every known root inside a word in a single pass.
// Implementations may use multi-pattern matching (Aho-Corasick) or a plain
// set-membership scan; results must be identical.
//
// Contract:
//   - the word is matched as-is (caller lowercases it)
//   - only roots of at least MinRootLen runes are reported
//   - overlapping occurrences are all reported
//   - order: ascending Start, then ascending End
type RootScanner interface {
	Occurrences(word string) []Occurrence

	// PatternCount returns how many roots the scanner can report, i.e. the
	// roots of at least MinRootLen runes.
	PatternCount() int
}

// MinRootLen is the shortest fragment ever considered a candidate morpheme.
const MinRootLen = 3

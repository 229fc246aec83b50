// Package segment splits a word into known roots and ranks the splits.
//
// Segmentation is exhaustive: every complete, contiguous partition of the
// word into roots of at least ports.MinRootLen runes is enumerated by a
// depth-first walk over start positions. A partition needs two or more
// spans; a word that is itself a root yields nothing unless it also splits.
// Words are dictionary headwords, so the exponential worst case stays small;
// words longer than MaxWordLen runes are not segmented at all.
package segment

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/corey/vacha/internal/ports"
	lru "github.com/hashicorp/golang-lru/v2"
)

// MaxWordLen is the longest word, in runes, that is segmented. The number
// of segmentations grows exponentially with length; longer input yields none.
const MaxWordLen = 40

// TooLong reports whether word exceeds MaxWordLen runes.
func TooLong(word string) bool {
	return utf8.RuneCountInString(word) > MaxWordLen
}

// Span is one root inside a word. Start and End are rune offsets into the
// lowercased word; End is exclusive.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Len returns the span length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Segmentation is an ordered run of contiguous spans.
type Segmentation []Span

// Parts returns the root text of each span.
func (s Segmentation) Parts() []string {
	parts := make([]string, len(s))
	for i, sp := range s {
		parts[i] = sp.Text
	}
	return parts
}

// Covered returns the number of runes accounted for by the spans.
func (s Segmentation) Covered() int {
	n := 0
	for _, sp := range s {
		n += sp.Len()
	}
	return n
}

// String joins the parts with "+", e.g. "fel+dor".
func (s Segmentation) String() string {
	return strings.Join(s.Parts(), "+")
}

// Segmenter enumerates segmentations using a RootScanner and memoizes the
// results per word in an LRU cache.
type Segmenter struct {
	scanner ports.RootScanner
	cache   *lru.Cache[string, []Segmentation]
}

// NewSegmenter creates a segmenter. cacheSize <= 0 disables the cache.
func NewSegmenter(scanner ports.RootScanner, cacheSize int) *Segmenter {
	s := &Segmenter{scanner: scanner}
	if cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		s.cache, _ = lru.New[string, []Segmentation](cacheSize)
	}
	return s
}

// Segment returns every complete segmentation of word (lowercased), in
// discovery order: shorter first spans before longer ones, recursively.
// The returned slice may be shared with the cache and must not be modified.
// Words longer than MaxWordLen return nil and are not cached.
func (s *Segmenter) Segment(word string) []Segmentation {
	lower := strings.ToLower(word)
	if TooLong(lower) {
		return nil
	}
	if s.cache != nil {
		if segs, ok := s.cache.Get(lower); ok {
			return segs
		}
	}

	segs := walk(lower, s.scanner.Occurrences(lower))

	if s.cache != nil {
		s.cache.Add(lower, segs)
	}
	return segs
}

// Patterns returns the number of roots the scanner can report.
func (s *Segmenter) Patterns() int {
	return s.scanner.PatternCount()
}

// CacheLen returns the number of cached words (0 when caching is disabled).
func (s *Segmenter) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

// Segment enumerates the segmentations of word against roots without a
// cache, using the set-membership scanner. Words longer than MaxWordLen
// return nil.
func Segment(word string, roots *lexicon.RootSet) []Segmentation {
	lower := strings.ToLower(word)
	if TooLong(lower) {
		return nil
	}
	return walk(lower, NewSetScanner(roots).Occurrences(lower))
}

// walk runs the depth-first enumeration over precomputed root occurrences.
// The path is one slice pushed and popped per frame; completed paths are
// cloned out.
func walk(word string, occ []ports.Occurrence) []Segmentation {
	runes := []rune(word)
	n := len(runes)

	ends := make(map[int][]int, len(occ))
	for _, o := range occ {
		ends[o.Start] = append(ends[o.Start], o.End)
	}
	for _, e := range ends {
		slices.Sort(e)
	}

	var out []Segmentation
	path := make([]Span, 0, n/ports.MinRootLen+1)

	var visit func(start int)
	visit = func(start int) {
		if start == n {
			if len(path) >= 2 {
				out = append(out, slices.Clone(Segmentation(path)))
			}
			return
		}
		for _, end := range ends[start] {
			path = append(path, Span{Start: start, End: end, Text: string(runes[start:end])})
			visit(end)
			path = path[:len(path)-1]
		}
	}
	visit(0)

	return out
}

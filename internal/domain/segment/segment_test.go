package segment

import (
	"strings"
	"testing"

	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Segmentation Engine: exhaustive split of a word into known roots
// Expectation: every complete partition into roots of >= 3 runes with at
// least two spans is returned, in depth-first discovery order.
// =============================================================================

func texts(segs []Segmentation) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.String()
	}
	return out
}

func TestSegment_IncludesKnownComposition(t *testing.T) {
	roots := lexicon.NewRootSet("fel", "dor", "mor")
	segs := Segment("feldormor", roots)
	assert.Contains(t, texts(segs), "fel+dor+mor")
}

func TestSegment_EnumeratesAllInDiscoveryOrder(t *testing.T) {
	roots := lexicon.NewRootSet("abc", "abcdef", "def", "ghi", "defghi")
	segs := Segment("abcdefghi", roots)
	assert.Equal(t, []string{
		"abc+def+ghi",
		"abc+defghi",
		"abcdef+ghi",
	}, texts(segs))
}

func TestSegment_SpansAreContiguousAndComplete(t *testing.T) {
	roots := lexicon.NewRootSet("abc", "abcdef", "def", "ghi", "defghi")
	for _, seg := range Segment("abcdefghi", roots) {
		require.NotEmpty(t, seg)
		assert.Equal(t, 0, seg[0].Start)
		for i := 1; i < len(seg); i++ {
			assert.Equal(t, seg[i-1].End, seg[i].Start)
		}
		assert.Equal(t, 9, seg[len(seg)-1].End)
		assert.Equal(t, 9, seg.Covered())
	}
}

func TestSegment_MinimumSpanLength(t *testing.T) {
	// "ab" and "cd" are roots but too short to ever be used.
	roots := lexicon.NewRootSet("ab", "cd", "abc", "dab", "cdab")
	segs := Segment("abcdab", roots)
	assert.Equal(t, []string{"abc+dab"}, texts(segs))
	for _, seg := range segs {
		for _, sp := range seg {
			assert.GreaterOrEqual(t, sp.Len(), 3, sp.Text)
		}
	}
}

func TestSegment_SingleSpanRejected(t *testing.T) {
	roots := lexicon.NewRootSet("feldor")
	assert.Empty(t, Segment("feldor", roots))
}

func TestSegment_NoCompleteCover(t *testing.T) {
	roots := lexicon.NewRootSet("fel", "dor")
	assert.Empty(t, Segment("feldorx", roots))
	assert.Empty(t, Segment("", roots))
}

func TestSegment_Lowercases(t *testing.T) {
	roots := lexicon.NewRootSet("fel", "dor")
	assert.Equal(t, []string{"fel+dor"}, texts(Segment("FelDor", roots)))
}

func TestSegment_RuneOffsets(t *testing.T) {
	roots := lexicon.NewRootSet("nəl", "vor")
	segs := Segment("nəlvor", roots)
	require.Len(t, segs, 1)
	assert.Equal(t, Segmentation{
		{Start: 0, End: 3, Text: "nəl"},
		{Start: 3, End: 6, Text: "vor"},
	}, segs[0])
}

func TestSegmenter_CachesPerWord(t *testing.T) {
	roots := lexicon.NewRootSet("fel", "dor")
	s := NewSegmenter(NewSetScanner(roots), 8)

	first := s.Segment("feldor")
	second := s.Segment("FELDOR")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.CacheLen())
}

func TestScanners_PatternCount(t *testing.T) {
	roots := lexicon.NewRootSet("ab", "abc", "nəl", "abcd")
	s := NewSegmenter(NewSetScanner(roots), 0)
	assert.Equal(t, 3, s.Patterns())
}

func TestSegmenter_CacheDisabled(t *testing.T) {
	roots := lexicon.NewRootSet("fel", "dor")
	s := NewSegmenter(NewSetScanner(roots), 0)
	assert.Len(t, s.Segment("feldor"), 1)
	assert.Equal(t, 0, s.CacheLen())
}

func TestSetScanner_OrderedOccurrences(t *testing.T) {
	roots := lexicon.NewRootSet("abc", "abcd", "bcd")
	occ := NewSetScanner(roots).Occurrences("abcd")
	require.Len(t, occ, 3)
	assert.Equal(t, [2]int{0, 3}, [2]int{occ[0].Start, occ[0].End})
	assert.Equal(t, [2]int{0, 4}, [2]int{occ[1].Start, occ[1].End})
	assert.Equal(t, [2]int{1, 4}, [2]int{occ[2].Start, occ[2].End})
}

func TestSegment_WordLengthCap(t *testing.T) {
	roots := lexicon.NewRootSet("abcd")
	atLimit := strings.Repeat("abcd", MaxWordLen/4)
	require.Equal(t, MaxWordLen, len(atLimit))
	assert.Len(t, Segment(atLimit, roots), 1)

	assert.Nil(t, Segment(atLimit+"abcd", roots))
}

func TestSegment_OverLongRepetitionReturnsNothing(t *testing.T) {
	// Unbounded, this word has billions of segmentations.
	roots := lexicon.NewRootSet("aaa", "aaaa", "aaaaa")
	assert.Nil(t, Segment(strings.Repeat("a", 80), roots))
	assert.True(t, TooLong(strings.Repeat("ə", MaxWordLen+1)))
	assert.False(t, TooLong(strings.Repeat("ə", MaxWordLen)))
}

func TestSegmenter_OverLongWordNotCached(t *testing.T) {
	roots := lexicon.NewRootSet("aaa", "aaaa", "aaaaa")
	s := NewSegmenter(NewSetScanner(roots), 8)
	assert.Nil(t, s.Segment(strings.Repeat("a", MaxWordLen+1)))
	assert.Equal(t, 0, s.CacheLen())
}

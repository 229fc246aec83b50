package segment

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/corey/vacha/internal/domain/similarity"
)

// Scoring thresholds.
const (
	// MinCoverage rejects segmentations leaving more than 10% of the word
	// unexplained. Gaps are not modeled.
	MinCoverage = 0.9

	// MinScore is the exclusive lower bound for a reported candidate.
	MinScore = 25.0

	// TopN is how many candidates a Decompositions result keeps.
	TopN = 3
)

// Sentinel messages for empty results.
const (
	NoSegmentations  = "No possible decompositions found."
	NoHighConfidence = "No high-confidence decompositions."
	WordTooLong      = "Word too long to decompose."
)

// Scorer ranks segmentations against a reference gloss.
//
// score = similarity*80 + parts*10 + coverage*10
//
// The parts term grows without bound, so a word split into many short roots
// can exceed 100 regardless of similarity. Callers treat the score as an
// ordering key, not a percentage.
type Scorer struct {
	lex *lexicon.Lexicon
	sim similarity.Func
}

// NewScorer creates a scorer. A nil sim selects similarity.Ratio.
func NewScorer(lex *lexicon.Lexicon, sim similarity.Func) *Scorer {
	if sim == nil {
		sim = similarity.Ratio
	}
	return &Scorer{lex: lex, sim: sim}
}

// Score rates seg as an explanation of word whose actual gloss is reference
// (empty when the word is not itself a headword). Returns 0 when coverage is
// below MinCoverage.
func (sc *Scorer) Score(seg Segmentation, word, reference string) float64 {
	n := utf8.RuneCountInString(strings.ToLower(word))
	if n == 0 || len(seg) == 0 {
		return 0
	}
	coverage := float64(seg.Covered()) / float64(n)
	if coverage < MinCoverage {
		return 0
	}

	meanings := make([]string, len(seg))
	for i, sp := range seg {
		meanings[i] = sc.lex.Meaning(sp.Text)
	}
	composed := strings.ToLower(strings.Join(meanings, " "))
	sim := sc.sim(composed, strings.ToLower(reference))

	return sim*80 + float64(len(seg))*10 + coverage*10
}

// Part is one root of a candidate with the gloss explaining it.
type Part struct {
	Root    string `json:"root"`
	Meaning string `json:"meaning"`
}

// Candidate is a scored segmentation.
type Candidate struct {
	Score float64 `json:"score"`
	Parts []Part  `json:"parts"`
}

// Text renders the parts as "fel: fire + dor: lord".
func (c Candidate) Text() string {
	items := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		items[i] = p.Root + ": " + p.Meaning
	}
	return strings.Join(items, " + ")
}

// Decompositions is the ranked outcome of analysing one word.
type Decompositions struct {
	Word          string      `json:"word"`
	Reference     string      `json:"reference,omitempty"`
	Segmentations int         `json:"segmentations"`
	Candidates    []Candidate `json:"candidates"`

	// TooLong is set when Word exceeds MaxWordLen and was not segmented.
	TooLong bool `json:"too_long,omitempty"`
}

// Found reports whether at least one high-confidence candidate exists.
func (d Decompositions) Found() bool {
	return len(d.Candidates) > 0
}

// String renders the ranked list, one candidate per line:
//
//	1. (score: 30%) fel: fire + dor: lord
//
// or one of the sentinel messages when nothing qualifies.
func (d Decompositions) String() string {
	if d.TooLong {
		return WordTooLong
	}
	if d.Segmentations == 0 {
		return NoSegmentations
	}
	if len(d.Candidates) == 0 {
		return NoHighConfidence
	}
	var sb strings.Builder
	for i, c := range d.Candidates {
		fmt.Fprintf(&sb, "%d. (score: %d%%) %s\n", i+1, int(c.Score), c.Text())
	}
	return sb.String()
}

// Analyzer ties segmentation and scoring together for single words.
type Analyzer struct {
	lex       *lexicon.Lexicon
	segmenter *Segmenter
	scorer    *Scorer
}

// NewAnalyzer creates an analyzer over one lexicon snapshot.
func NewAnalyzer(lex *lexicon.Lexicon, segmenter *Segmenter, scorer *Scorer) *Analyzer {
	return &Analyzer{lex: lex, segmenter: segmenter, scorer: scorer}
}

// Possible finds the most plausible compound readings of word. The reference
// gloss is the word's own gloss when it is a headword. Candidates scoring
// at or below MinScore are dropped; the best TopN are kept, highest first,
// ties broken by descending candidate text.
func (a *Analyzer) Possible(word string) Decompositions {
	lower := strings.ToLower(word)
	d := Decompositions{Word: lower}
	if e, ok := a.lex.Find(lower, lexicon.FieldHeadword); ok {
		d.Reference = e.Gloss
	}
	if TooLong(lower) {
		d.TooLong = true
		return d
	}

	segs := a.segmenter.Segment(lower)
	d.Segmentations = len(segs)

	type ranked struct {
		c    Candidate
		text string
	}
	var scored []ranked
	for _, seg := range segs {
		score := a.scorer.Score(seg, lower, d.Reference)
		if score <= MinScore {
			continue
		}
		c := Candidate{Score: score, Parts: make([]Part, len(seg))}
		for i, sp := range seg {
			c.Parts[i] = Part{Root: sp.Text, Meaning: a.lex.Meaning(sp.Text)}
		}
		scored = append(scored, ranked{c: c, text: c.Text()})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].c.Score != scored[j].c.Score {
			return scored[i].c.Score > scored[j].c.Score
		}
		return scored[i].text > scored[j].text
	})
	if len(scored) > TopN {
		scored = scored[:TopN]
	}
	for _, r := range scored {
		d.Candidates = append(d.Candidates, r.c)
	}
	return d
}

// Package decompose walks the structure of a headword: hyphenated compounds,
// "/"-separated alternates and the negation prefix, down to atomic words that
// are resolved against the lexicon. Long atomic words that carry no visible
// structure are handed to the segment analyzer for heuristic root readings.
//
// The walk threads a visited set of lowercased words down each branch. Every
// child receives its own copy, so siblings never see each other's words and
// only a repeat on the ancestor chain is reported as a cycle.
package decompose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/corey/vacha/internal/domain/segment"
	mapset "github.com/deckarep/golang-set/v2"
)

// Negation morpheme and its fixed gloss.
const (
	NegationPrefix = "nə"
	NegationGloss  = "not / negation / without"
)

// AnnexMinLen is the rune length an atomic word must exceed before the
// segment analyzer is consulted.
const AnnexMinLen = 6

// Kind classifies a node of the decomposition tree.
type Kind int

const (
	KindAtomic Kind = iota
	KindCompound
	KindAlternates
	KindNegation
	KindCycle
)

var kindNames = [...]string{"atomic", "compound", "alternates", "negation", "cycle"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText lets Kind appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", b)
}

// Node is one word in the decomposition tree.
//
// Gloss and Notes are the lexicon annotation: for atomic nodes the resolved
// entry (Found reports whether one exists), for compounds the optional
// whole-word entry. Possible is set on atomic nodes that qualified for the
// heuristic annex and received at least one candidate.
type Node struct {
	Word     string                  `json:"word"`
	Kind     Kind                    `json:"kind"`
	Found    bool                    `json:"found"`
	Gloss    string                  `json:"gloss,omitempty"`
	Notes    string                  `json:"notes,omitempty"`
	Children []*Node                 `json:"children,omitempty"`
	Possible *segment.Decompositions `json:"possible,omitempty"`
}

// Decomposer resolves words against one lexicon snapshot. It holds no
// per-call state and is safe for concurrent use.
type Decomposer struct {
	lex      *lexicon.Lexicon
	analyzer *segment.Analyzer
}

// New creates a decomposer. A nil analyzer disables the annex.
func New(lex *lexicon.Lexicon, analyzer *segment.Analyzer) *Decomposer {
	return &Decomposer{lex: lex, analyzer: analyzer}
}

// Decompose builds the tree for word with an empty ancestor chain.
func (d *Decomposer) Decompose(word string) *Node {
	return d.DecomposeVisited(word, mapset.NewThreadUnsafeSet[string]())
}

// DecomposeVisited builds the tree for word treating the lowercased words in
// visited as already on the ancestor chain. visited is not modified.
func (d *Decomposer) DecomposeVisited(word string, visited mapset.Set[string]) *Node {
	return d.walk(word, visited.Clone())
}

// Text decomposes word and renders the tree.
func (d *Decomposer) Text(word string) string {
	return d.Decompose(word).Render()
}

func (d *Decomposer) walk(word string, visited mapset.Set[string]) *Node {
	lower := strings.ToLower(word)
	if visited.ContainsOne(lower) {
		return &Node{Word: word, Kind: KindCycle}
	}
	visited.Add(lower)

	if strings.Contains(word, "-") {
		n := &Node{Word: word, Kind: KindCompound}
		for _, p := range strings.Split(word, "-") {
			n.Children = append(n.Children, d.walk(strings.TrimSpace(p), visited.Clone()))
		}
		if e, ok := d.lex.Find(lower, lexicon.FieldHeadword); ok {
			n.Found, n.Gloss, n.Notes = true, e.Gloss, e.Notes
		}
		return n
	}

	if strings.Contains(word, "/") {
		n := &Node{Word: word, Kind: KindAlternates}
		for _, p := range strings.Split(word, "/") {
			n.Children = append(n.Children, d.walk(strings.TrimSpace(p), visited.Clone()))
		}
		return n
	}

	if strings.HasPrefix(lower, NegationPrefix) {
		base := strings.TrimSpace(string([]rune(word)[utf8.RuneCountInString(NegationPrefix):]))
		if base != "" {
			return &Node{
				Word:     word,
				Kind:     KindNegation,
				Children: []*Node{d.walk(base, visited.Clone())},
			}
		}
	}

	n := &Node{Word: word, Kind: KindAtomic}
	if e, ok := d.lex.LookupExact(lower, lexicon.FieldHeadword); ok {
		n.Found, n.Gloss, n.Notes = true, e.Gloss, e.Notes
	}
	if d.analyzer != nil && annexEligible(word, lower) {
		if p := d.analyzer.Possible(word); p.Found() {
			n.Possible = &p
		}
	}
	return n
}

// annexEligible reports whether an atomic word looks like an unmarked
// compound worth segmenting.
func annexEligible(word, lower string) bool {
	return utf8.RuneCountInString(word) > AnnexMinLen &&
		!strings.ContainsAny(word, "-/") &&
		!strings.HasPrefix(lower, NegationPrefix)
}

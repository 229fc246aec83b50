// Package search resolves queries against a lexicon: exact and wildcard
// matching first, fuzzy similarity ranking as the fallback.
//
// Every field is split on "/" and each alternate is tested on its own; a row
// matches when any alternate does. Exact/wildcard results keep lexicon order.
// Fuzzy results are ranked by similarity and reduced to one per row.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/corey/vacha/internal/domain/similarity"
)

// Fuzzy defaults and the accepted tolerance range.
const (
	DefaultMinScore = 75
	DefaultLimit    = 4
	MinScoreFloor   = 50
	MinScoreCeiling = 95
	MinScoreStep    = 5
)

// Mode records which stage produced a result.
type Mode int

const (
	ModeNone Mode = iota
	ModeExact
	ModeFuzzy
)

var modeNames = [...]string{"none", "exact", "fuzzy"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// MarshalText lets Mode appear by name in JSON.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	for i, name := range modeNames {
		if name == string(b) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", b)
}

// Engine searches one lexicon snapshot. It holds no per-query state and is
// safe for concurrent use.
type Engine struct {
	lex       *lexicon.Lexicon
	sim       similarity.Func
	exclusion Exclusion
	limit     int
}

// NewEngine creates an engine. A nil sim selects similarity.Ratio.
func NewEngine(lex *lexicon.Lexicon, sim similarity.Func) *Engine {
	if sim == nil {
		sim = similarity.Ratio
	}
	return &Engine{lex: lex, sim: sim, exclusion: DefaultExclusion, limit: DefaultLimit}
}

// WithExclusion returns a copy of e using x for wildcard exclusion.
func (e *Engine) WithExclusion(x Exclusion) *Engine {
	c := *e
	c.exclusion = x
	return &c
}

// WithLimit returns a copy of e keeping at most limit fuzzy results.
func (e *Engine) WithLimit(limit int) *Engine {
	c := *e
	if limit > 0 {
		c.limit = limit
	}
	return &c
}

// ExactWildcard returns one block per matching row, in lexicon order.
func (e *Engine) ExactWildcard(query string, dir Direction) []Block {
	original := strings.TrimSpace(query)
	p := parsePattern(original)
	exclude := e.exclusion.appliesTo(p)
	sf, rf := dir.SearchField(), dir.ResultField()

	var blocks []Block
	for i, entry := range e.lex.All() {
		field := entry.Value(sf)
		for _, term := range lexicon.Alternates(field) {
			if exclude && e.exclusion.mentions(term) {
				continue
			}
			if p.match(term) {
				blocks = append(blocks, Block{
					Index:        i,
					Query:        original,
					Field:        field,
					ResultColumn: rf.String(),
					Result:       entry.Value(rf),
					Notes:        entry.Notes,
				})
				break
			}
		}
	}
	return blocks
}

// Fuzzy scores every alternate of every row against the query and returns
// the best alternate per row, highest similarity first, at most limit rows.
// Scores are percentages; candidates below minScore are dropped. An empty
// query yields nothing. A limit below 1 means DefaultLimit.
func (e *Engine) Fuzzy(query string, dir Direction, minScore, limit int) []Block {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	sf, rf := dir.SearchField(), dir.ResultField()

	var candidates []Block
	for i, entry := range e.lex.All() {
		field := entry.Value(sf)
		for _, term := range strings.Split(field, "/") {
			term = strings.TrimSpace(term)
			score := e.sim(q, strings.ToLower(term)) * 100
			if score < float64(minScore) {
				continue
			}
			candidates = append(candidates, Block{
				Index:        i,
				Query:        strings.TrimSpace(query),
				Field:        field,
				Fuzzy:        true,
				Term:         term,
				Score:        score,
				ResultColumn: rf.String(),
				Result:       entry.Value(rf),
				Notes:        entry.Notes,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	seen := make(map[int]struct{}, len(candidates))
	var blocks []Block
	for _, c := range candidates {
		if _, dup := seen[c.Index]; dup {
			continue
		}
		seen[c.Index] = struct{}{}
		blocks = append(blocks, c)
		if len(blocks) >= limit {
			break
		}
	}
	return blocks
}

// Search runs exact/wildcard matching and falls back to fuzzy matching with
// the engine's limit when nothing matched.
func (e *Engine) Search(query string, dir Direction, minScore int) Result {
	r := Result{
		Query:     strings.TrimSpace(query),
		Direction: dir,
		MinScore:  minScore,
	}
	if r.Blocks = e.ExactWildcard(query, dir); len(r.Blocks) > 0 {
		r.Mode = ModeExact
		return r
	}
	if r.Blocks = e.Fuzzy(query, dir, minScore, e.limit); len(r.Blocks) > 0 {
		r.Mode = ModeFuzzy
	}
	return r
}

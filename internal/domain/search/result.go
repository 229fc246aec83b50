package search

import (
	"fmt"
	"strings"

	"github.com/corey/vacha/internal/ports"
)

// NoNotes stands in for an empty notes cell.
const NoNotes = "No notes available."

// BlockSeparator joins rendered blocks.
const BlockSeparator = "\n---\n"

// Block is one matched row.
//
// Field is the raw search-column value of the row. For fuzzy blocks Term is
// the alternate that scored and Score its similarity percentage.
type Block struct {
	Index        int     `json:"index"`
	Query        string  `json:"query"`
	Field        string  `json:"field"`
	Fuzzy        bool    `json:"fuzzy,omitempty"`
	Term         string  `json:"term,omitempty"`
	Score        float64 `json:"score,omitempty"`
	ResultColumn string  `json:"result_column"`
	Result       string  `json:"result"`
	Notes        string  `json:"notes,omitempty"`
}

// String renders the block:
//
//	Match found for 'fire' in 'fire':
//	Eald-vacha: fel
//	Notes: No notes available.
func (b Block) String() string {
	notes := b.Notes
	if notes == "" {
		notes = NoNotes
	}
	var head string
	if b.Fuzzy {
		head = fmt.Sprintf("**Fuzzy match** (score: %d%%): '%s' in '%s'", int(b.Score), b.Term, b.Field)
	} else {
		head = fmt.Sprintf("Match found for '%s' in '%s':", b.Query, b.Field)
	}
	return fmt.Sprintf("%s\n%s: %s\nNotes: %s\n", head, b.ResultColumn, b.Result, notes)
}

// Result is the outcome of Engine.Search.
type Result struct {
	Query     string    `json:"query"`
	Direction Direction `json:"direction"`
	MinScore  int       `json:"min_score"`
	Mode      Mode      `json:"mode"`
	Blocks    []Block   `json:"blocks"`
}

// Texts renders each block.
func (r Result) Texts() []string {
	out := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		out[i] = b.String()
	}
	return out
}

// Text renders the full result as shown to the user, including the fuzzy
// fallback banner or the no-match line.
func (r Result) Text() string {
	switch r.Mode {
	case ModeExact:
		return strings.Join(r.Texts(), BlockSeparator) + "\n"
	case ModeFuzzy:
		return fmt.Sprintf("No exact/wildcard match for '%s'.\n\nFuzzy matches (min similarity %d%%):\n\n", r.Query, r.MinScore) +
			strings.Join(r.Texts(), BlockSeparator) + "\n"
	default:
		return fmt.Sprintf("No matches found (exact, wildcard, or fuzzy ≥ %d%%).\n", r.MinScore)
	}
}

// Headwords returns the result value of every block when the search reported
// headwords (English to Eald-vacha). Otherwise it returns nil.
func (r Result) Headwords() []string {
	if r.Direction != EnglishToHeadword {
		return nil
	}
	return ParseHeadwords(r.Texts())
}

var headwordPrefix = ports.ColumnHeadword + ": "

// ParseHeadwords extracts the headword from each rendered block, taken from
// its first line starting with "Eald-vacha: ". Blocks without one are skipped.
func ParseHeadwords(blocks []string) []string {
	var words []string
	for _, b := range blocks {
		for line := range strings.SplitSeq(b, "\n") {
			if rest, ok := strings.CutPrefix(line, headwordPrefix); ok {
				words = append(words, strings.TrimSpace(rest))
				break
			}
		}
	}
	return words
}

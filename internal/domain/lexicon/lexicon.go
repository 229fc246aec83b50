// Package lexicon holds the immutable English ↔ Eald-vacha entry table and
// the lookups every other domain package builds on.
//
// A Lexicon is constructed once from raw rows and never mutated afterwards,
// so a single instance may be shared by any number of concurrent readers
// without locking. Not-found is always reported as a boolean or a sentinel
// string, never as an error.
package lexicon

import (
	"iter"
	"strings"

	"github.com/corey/vacha/internal/ports"
)

// Unknown is returned by Meaning when no entry explains a term.
const Unknown = "[unknown]"

// Field selects which column of an entry a lookup compares against.
type Field int

const (
	FieldHeadword Field = iota // Eald-vacha column
	FieldGloss                 // English column
)

// String returns the column header for the field.
func (f Field) String() string {
	if f == FieldGloss {
		return ports.ColumnEnglish
	}
	return ports.ColumnHeadword
}

// Entry is one lexicon row. Index is the row position and serves as the
// entry's identity when results referring to the same row are deduplicated.
type Entry struct {
	Index    int    `json:"index"`
	Headword string `json:"headword"`
	Gloss    string `json:"gloss"`
	Notes    string `json:"notes,omitempty"`
}

// Value returns the entry's text for the given field.
func (e Entry) Value(f Field) string {
	if f == FieldGloss {
		return e.Gloss
	}
	return e.Headword
}

// HasNotes reports whether the notes cell was filled in.
func (e Entry) HasNotes() bool {
	return e.Notes != ""
}

// Lexicon is the ordered, read-only entry table.
type Lexicon struct {
	entries []Entry
}

// New builds a Lexicon from raw rows. Cell text is trimmed; row order is kept.
func New(rows []ports.Row) *Lexicon {
	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{
			Index:    i,
			Headword: strings.TrimSpace(r.Headword),
			Gloss:    strings.TrimSpace(r.Gloss),
			Notes:    strings.TrimSpace(r.Notes),
		}
	}
	return &Lexicon{entries: entries}
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// All yields every entry in row order. Each call starts again from row 0.
func (l *Lexicon) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Find returns the first entry whose whole field equals term,
// case-insensitively. Alternates are not split.
func (l *Lexicon) Find(term string, f Field) (Entry, bool) {
	t := Normalize(term)
	for _, e := range l.entries {
		if Normalize(e.Value(f)) == t {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupExact returns the first entry whose field equals term. A direct match
// on the unsplit field wins over any entry that only matches through one of
// its "/"-separated alternates.
func (l *Lexicon) LookupExact(term string, f Field) (Entry, bool) {
	if e, ok := l.Find(term, f); ok {
		return e, true
	}
	t := Normalize(term)
	for _, e := range l.entries {
		for _, alt := range Alternates(e.Value(f)) {
			if alt == t {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Meaning returns the gloss explaining a morpheme: an exact headword first,
// then any headword having term as a whole alternate or as one of its
// hyphen-separated components. Returns Unknown when nothing matches.
func (l *Lexicon) Meaning(term string) string {
	if e, ok := l.Find(term, FieldHeadword); ok {
		return e.Gloss
	}
	t := Normalize(term)
	for _, e := range l.entries {
		for _, alt := range Alternates(e.Headword) {
			if alt == t {
				return e.Gloss
			}
			for _, part := range Components(alt) {
				if part == t {
					return e.Gloss
				}
			}
		}
	}
	return Unknown
}

// Normalize lowercases and trims s. All comparisons in this package go
// through it.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Alternates splits a field on "/" and normalizes each alternate.
// Empty alternates are kept so positions line up with the raw field.
func Alternates(field string) []string {
	parts := strings.Split(field, "/")
	for i, p := range parts {
		parts[i] = Normalize(p)
	}
	return parts
}

// Components splits one alternate on "-" and returns its non-empty,
// normalized parts.
func Components(alt string) []string {
	raw := strings.Split(alt, "-")
	parts := raw[:0]
	for _, p := range raw {
		if p = Normalize(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

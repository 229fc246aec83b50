// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Column names of the tabular lexicon resource. The dictionary spreadsheet uses
// exactly these headers; positional fallback follows the same order.
const (
	ColumnEnglish  = "English"
	ColumnHeadword = "Eald-vacha"
	ColumnNotes    = "Notes"
)

// Row is one raw lexicon row as read from a backing resource.
// Headword may carry several "/"-separated alternate spellings.
// An empty Notes means the cell was blank.
type Row struct {
	Headword string `json:"headword"`
	Gloss    string `json:"gloss"`
	Notes    string `json:"notes,omitempty"`
}

// Source loads the complete lexicon from a backing resource (spreadsheet,
// CSV, bbolt snapshot).
//
// Load is all-or-nothing: on any read or format error it returns nil rows and
// a non-nil error. A partially read lexicon is never returned. Row order is
// the resource order and is significant (first match wins in lookups).
type Source interface {
	Load() ([]Row, error)

	// Describe returns a short human-readable label for logs and `vacha config`
	// (e.g., "xlsx:dictionary.xlsx").
	Describe() string
}

// SnapshotStore persists a lexicon snapshot so later processes can load it
// without re-parsing the spreadsheet. The backing store (bbolt) is written
// only by explicit conversion; query paths open it read-only.
type SnapshotStore interface {
	Source

	// SaveRows replaces the stored snapshot with rows, transactionally.
	// origin records where the rows came from.
	SaveRows(origin string, rows []Row) error
}

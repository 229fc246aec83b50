// Package sheet loads the lexicon from tabular files: Excel workbooks through
// excelize and CSV through encoding/csv. Both go through the same column
// mapping.
//
// The first row is a header. Columns are located by name (English,
// Eald-vacha, Notes; case-insensitive). When the names do not match and the
// table is exactly three columns wide, the columns are taken positionally in
// that order. Fully blank rows are skipped.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corey/vacha/internal/ports"
)

// ErrMissingColumns is returned when the header names neither the English
// and Eald-vacha columns nor a three-column layout.
var ErrMissingColumns = errors.New("lexicon needs English and Eald-vacha columns")

// columns locates the lexicon fields in a record; notes is -1 when absent.
type columns struct {
	gloss, headword, notes int
}

func mapColumns(header []string, width int) (columns, error) {
	c := columns{gloss: -1, headword: -1, notes: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case strings.ToLower(ports.ColumnEnglish):
			if c.gloss < 0 {
				c.gloss = i
			}
		case strings.ToLower(ports.ColumnHeadword):
			if c.headword < 0 {
				c.headword = i
			}
		case strings.ToLower(ports.ColumnNotes):
			if c.notes < 0 {
				c.notes = i
			}
		}
	}
	if c.gloss >= 0 && c.headword >= 0 {
		return c, nil
	}
	if width == 3 {
		return columns{gloss: 0, headword: 1, notes: 2}, nil
	}
	return columns{}, fmt.Errorf("%w (header %q)", ErrMissingColumns, header)
}

// ParseRecords maps raw records (header first) to lexicon rows.
func ParseRecords(records [][]string) ([]ports.Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w (empty table)", ErrMissingColumns)
	}
	width := 0
	for _, r := range records {
		width = max(width, len(r))
	}
	cols, err := mapColumns(records[0], width)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, ports.Row{
			Headword: cell(rec, cols.headword),
			Gloss:    cell(rec, cols.gloss),
			Notes:    strings.TrimSpace(cell(rec, cols.notes)),
		})
	}
	return rows, nil
}

// cell returns rec[i], or "" when the record is short (excelize drops
// trailing empty cells).
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// canonicalHeader is the canonical column order written by the writers.
var canonicalHeader = []string{ports.ColumnEnglish, ports.ColumnHeadword, ports.ColumnNotes}

func record(r ports.Row) []string {
	return []string{r.Gloss, r.Headword, r.Notes}
}

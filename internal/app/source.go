package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corey/vacha/internal/adapters/bbolt"
	"github.com/corey/vacha/internal/adapters/sheet"
	"github.com/corey/vacha/internal/ports"
)

// OpenSource picks the lexicon reader for path by extension:
// .xlsx (excelize), .csv, or .db (bbolt snapshot).
func OpenSource(path string) (ports.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return sheet.NewXLSX(path), nil
	case ".csv":
		return sheet.NewCSV(path), nil
	case ".db", ".bolt":
		return &snapshotSource{path: path}, nil
	}
	return nil, fmt.Errorf("unsupported lexicon format %q (want .xlsx, .csv or .db)", filepath.Ext(path))
}

// snapshotSource opens the bbolt snapshot read-only for each Load and closes
// it again, so `vacha convert` can rewrite the file while a server runs.
type snapshotSource struct {
	path string
}

func (s *snapshotSource) Describe() string {
	return "bbolt:" + s.path
}

func (s *snapshotSource) Load() ([]ports.Row, error) {
	store, err := bbolt.OpenReadOnly(s.path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load()
}

// Convert reads the lexicon at in and writes it to out. The output format
// follows out's extension: .db (bbolt snapshot), .xlsx or .csv.
// Returns the number of rows written.
func Convert(in, out string) (int, error) {
	src, err := OpenSource(in)
	if err != nil {
		return 0, err
	}
	rows, err := src.Load()
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", src.Describe(), err)
	}

	switch strings.ToLower(filepath.Ext(out)) {
	case ".db", ".bolt":
		store, err := bbolt.NewStore(out)
		if err != nil {
			return 0, err
		}
		if err := store.SaveRows(in, rows); err != nil {
			store.Close()
			return 0, fmt.Errorf("save snapshot: %w", err)
		}
		if err := store.Close(); err != nil {
			return 0, err
		}
	case ".xlsx":
		if err := sheet.WriteXLSX(out, rows); err != nil {
			return 0, err
		}
	case ".csv":
		if err := sheet.WriteCSV(out, rows); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("unsupported output format %q (want .db, .xlsx or .csv)", filepath.Ext(out))
	}
	return len(rows), nil
}

package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/corey/vacha/internal/ports"
)

// CSV is a ports.Source reading a comma-separated export of the lexicon.
type CSV struct {
	path string
}

var _ ports.Source = (*CSV)(nil)

// NewCSV creates a source for the file at path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Describe implements ports.Source.
func (c *CSV) Describe() string {
	return "csv:" + c.path
}

// Load implements ports.Source.
func (c *CSV) Load() ([]ports.Row, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses CSV data from r. Records may have differing lengths.
func ReadCSV(r io.Reader) ([]ports.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return ParseRecords(records)
}

// WriteCSV writes rows to path with the canonical header.
func WriteCSV(path string, rows []ports.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(canonicalHeader); err != nil {
		f.Close()
		return err
	}
	for _, r := range rows {
		if err := w.Write(record(r)); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package sheet

import (
	"fmt"
	"io"

	"github.com/corey/vacha/internal/ports"
	"github.com/xuri/excelize/v2"
)

// XLSX is a ports.Source reading the first worksheet of an Excel workbook.
type XLSX struct {
	path string
}

var _ ports.Source = (*XLSX)(nil)

// NewXLSX creates a source for the workbook at path.
func NewXLSX(path string) *XLSX {
	return &XLSX{path: path}
}

// Describe implements ports.Source.
func (x *XLSX) Describe() string {
	return "xlsx:" + x.path
}

// Load implements ports.Source.
func (x *XLSX) Load() ([]ports.Row, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadXLSX parses a workbook from r.
func ReadXLSX(r io.Reader) ([]ports.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]ports.Row, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	rows, err := ParseRecords(records)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// WriteXLSX writes rows to a new workbook at path with the canonical header.
func WriteXLSX(path string, rows []ports.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const name = "Sheet1"
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(canonicalHeader)); err != nil {
		return err
	}
	for i, r := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cellName, toCells(record(r))); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// Package xlsx wraps excelize for the single-sheet workbooks the importer reads and the
// reports write.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReadRows returns every row of the first worksheet in r. Trailing empty cells are trimmed
// by excelize, so rows may be shorter than the header.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// Writer builds a workbook one sheet at a time. The first call to Sheet renames the
// default sheet instead of adding one.
type Writer struct {
	file    *excelize.File
	sheet   string
	row     int
	started bool
}

func NewWriter() *Writer {
	return &Writer{file: excelize.NewFile()}
}

// Sheet switches to a new sheet named name and writes header as its first row.
func (w *Writer) Sheet(name string, header ...string) error {
	if !w.started {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
		w.started = true
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", name, err)
	}
	w.sheet = name
	w.row = 0

	if len(header) == 0 {
		return nil
	}
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := w.Append(cells...); err != nil {
		return err
	}
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(name, "A1", last, style)
}

// Append writes values as the next row of the current sheet.
func (w *Writer) Append(values ...interface{}) error {
	if !w.started {
		return fmt.Errorf("no sheet selected")
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", w.row, err)
	}
	return nil
}

// Bytes serializes the workbook and releases it. The Writer must not be used afterwards.
func (w *Writer) Bytes() ([]byte, error) {
	defer w.file.Close()

	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

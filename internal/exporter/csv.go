package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sheet is a table to export
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// CSVOptions configures CSV writing behavior
type CSVOptions struct {
	Delimiter rune
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// DefaultCSVOptions matches the layout of the source export
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ';', BOMPrefix: true}
}

// WriteCSV writes the sheet header and rows as CSV
func WriteCSV(w io.Writer, sheet Sheet, opts CSVOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		writer.Comma = opts.Delimiter
	}

	if len(sheet.Columns) > 0 {
		if err := writer.Write(sheet.Columns); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range sheet.Rows {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Write exports the sheet in format f
func Write(w io.Writer, f Format, sheet Sheet) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, sheet, DefaultCSVOptions())
	case FormatXLSX:
		return WriteXLSX(w, sheet)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

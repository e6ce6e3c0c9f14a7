package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ratpdash/pkg/contracts/domain"
)

const (
	defaultSheetName = "validations"
	maxSheetNameLen  = 31
)

// WriteXLSX writes the sheet as a single-sheet workbook.
// Cells of the count column are stored as numbers, the rest as text.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(sheet.Name)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	countCol := -1
	header := make([]interface{}, len(sheet.Columns))
	for i, c := range sheet.Columns {
		header[i] = c
		if c == domain.ColumnCount {
			countCol = i
		}
	}
	if len(header) > 0 {
		if err := sw.SetRow("A1", header); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range sheet.Rows {
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = v
			if j == countCol {
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					cells[j] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sheetName strips characters Excel rejects in sheet names and truncates to its limit
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, s)
	s = strings.Trim(strings.TrimSpace(s), "'")
	if s == "" {
		return defaultSheetName
	}
	if r := []rune(s); len(r) > maxSheetNameLen {
		s = string(r[:maxSheetNameLen])
	}
	return s
}

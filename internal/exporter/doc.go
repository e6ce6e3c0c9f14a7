// Package exporter writes the filtered validations table for download.
//
// Two formats are supported:
//
// CSV: semicolon-delimited like the source export, prefixed with a UTF-8 BOM
// so spreadsheet tools detect the encoding of accented stop names.
//
// XLSX: a single sheet built with excelize, with the validation count column
// stored as numbers.
//
// Example usage:
//
//	f, err := exporter.ParseFormat("xlsx")
//	if err != nil {
//		return err
//	}
//	err = exporter.Write(w, f, exporter.Sheet{Name: "Janvier", Columns: cols, Rows: rows})
package exporter

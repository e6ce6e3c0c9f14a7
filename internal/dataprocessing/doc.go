// Package dataprocessing loads the transit validations export and computes the
// dashboard aggregates over it.
//
// # Architecture
//
// The package is organized into three parts:
//
// 1. Parser: reads the semicolon-delimited CSV into a dataframe and normalizes it
// 2. Table: an immutable, read-only view over the loaded dataframe
// 3. Analytics: headline metrics, the month filter and the three grouped projections
//
// # Usage
//
//	table, err := dataprocessing.ParseFile("validations.csv", dataprocessing.DefaultParseOptions())
//	if err != nil {
//	    return err
//	}
//
//	metrics := dataprocessing.Summarize(table)
//	days, err := dataprocessing.TotalsByDay(table)
//	shares, err := dataprocessing.CategorySharesByMonth(table)
//	top, err := dataprocessing.TopStops(table, 10)
//	filtered, err := dataprocessing.FilterByMonth(table, "Janvier")
//
// # Data Flow
//
//	CSV File → Parser → Table → Analytics → Dashboard view
//
// Every projection is computed over the full table. The month filter only
// narrows the rows displayed in the raw table.
//
// # Error Handling
//
// Load failures are fatal for the dashboard and are reported as *errors.AppError
// values: a missing file is NOT_FOUND, a missing column, an unparseable date or
// a malformed count is PARSING. Parsing errors name the offending line.
package dataprocessing

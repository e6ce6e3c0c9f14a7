// Package services implements the dashboard pipeline between the HTTP handlers
// and the loaded validations table.
//
// # Architecture
//
// Services follow these principles:
//
//	1. The table is loaded once at startup and injected; services never mutate it
//	2. Every page load is a pure function of (table, filter)
//	3. Context propagation for cancellation and tracing
//	4. Cross-cutting concerns (logging, metrics, spans) live here, not in handlers
//
// # Available Services
//
//	- DashboardService: renders the dashboard view, charts, table pages and exports
//	- HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Services return errors that the transport layer maps to problem documents:
//
//	- *errors.APIError for client mistakes (unknown month, unsupported format)
//	- *errors.AppError for render and export failures
//	- ErrServiceUnavailable when no table is loaded
//
// # Testing
//
// Services are tested against tables built from the CSV fixtures in
// internal/shared/testutil:
//
//	path := testutil.WriteValidationsCSV(t, testutil.SampleRows())
//	table, _ := dataprocessing.ParseFile(path, dataprocessing.DefaultParseOptions())
//	svc := NewDashboardService(table, DashboardOptions{}, logger)
package services

// Package app wires the dashboard together and owns its lifecycle.
//
// # Initialization Flow
//
// NewApplication performs, in order:
//
//	1. Initialize OpenTelemetry (tracing and the Prometheus metrics registry)
//	2. Load the validations export named by data.csv_path
//	3. Create the dashboard and health services
//	4. Set up the chi router, middleware chain and handlers
//	5. Create the HTTP server
//
// A load failure is fatal: the error is returned and nothing is served.
//
// # Routes
//
//	GET /                      dashboard page
//	GET /charts/{name}.svg     days, categories, stops
//	GET /api/...               JSON data, exports, health and version
//	GET /metrics               Prometheus scrape endpoint
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Run blocks until ctx is cancelled, then shuts the server down within
// server.shutdown_timeout and flushes telemetry.
package app

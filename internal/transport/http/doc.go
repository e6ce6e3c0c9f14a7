// Package http implements the HTTP handlers of the dashboard.
// Handlers stay thin: they decode and validate query parameters, call the
// dashboard service and format the response.
//
// # Routes
//
//	GET /                        dashboard page (HTML, charts inlined as SVG)
//	GET /charts/{name}.svg       one chart: days, categories or stops
//	GET /api/dashboard           the full dashboard view as JSON
//	GET /api/months              selectable months
//	GET /api/records             one page of the filtered table
//	GET /api/legend              category colors of the categories chart
//	GET /api/export/{format}     filtered table as csv or xlsx
//	GET /api/health[/live|/ready], /api/version
//	GET /metrics                 Prometheus exposition
//
// Query parameters are decoded with ajg/form and validated against the
// contracts in pkg/contracts/api/v1.
//
// # Error Handling
//
// All errors are written as RFC 7807 problem documents by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/dashboard/unknown-month",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "month \"Mars\" is not present in the data",
//	    "instance": "/api/dashboard",
//	    "trace_id": "..."
//	}
//
// # Testing
//
// Handlers are tested with httptest against a mocked DashboardService.
package http

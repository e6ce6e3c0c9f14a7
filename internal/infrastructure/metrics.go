package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DashboardMetrics holds the instruments recorded by the HTTP layer and the
// dashboard service. A nil *DashboardMetrics records nothing.
type DashboardMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	RendersTotal   metric.Int64Counter
	RenderDuration metric.Float64Histogram
	ChartRenders   metric.Int64Counter
	ExportsTotal   metric.Int64Counter
	DatasetRows    metric.Int64Gauge
}

// NewDashboardMetrics creates the instruments on meter
func NewDashboardMetrics(meter metric.Meter) (*DashboardMetrics, error) {
	var (
		m   DashboardMetrics
		err error
	)

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.RendersTotal, err = meter.Int64Counter(
		"dashboard_renders_total",
		metric.WithDescription("Total number of dashboard renders"),
	); err != nil {
		return nil, err
	}

	if m.RenderDuration, err = meter.Float64Histogram(
		"dashboard_render_duration_seconds",
		metric.WithDescription("Dashboard render duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.ChartRenders, err = meter.Int64Counter(
		"chart_renders_total",
		metric.WithDescription("Total number of SVG charts rendered"),
	); err != nil {
		return nil, err
	}

	if m.ExportsTotal, err = meter.Int64Counter(
		"exports_total",
		metric.WithDescription("Total number of filtered table exports"),
	); err != nil {
		return nil, err
	}

	if m.DatasetRows, err = meter.Int64Gauge(
		"dataset_rows",
		metric.WithDescription("Rows in the loaded validations table"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

func status(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("status", "error")
	}
	return attribute.String("status", "success")
}

// RecordRender records one dashboard render
func (m *DashboardMetrics) RecordRender(ctx context.Context, month string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("month", month), status(err))
	m.RendersTotal.Add(ctx, 1, attrs)
	m.RenderDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordChart records one chart render
func (m *DashboardMetrics) RecordChart(ctx context.Context, chart string, err error) {
	if m == nil {
		return
	}
	m.ChartRenders.Add(ctx, 1, metric.WithAttributes(attribute.String("chart", chart), status(err)))
}

// RecordExport records one export
func (m *DashboardMetrics) RecordExport(ctx context.Context, format string, err error) {
	if m == nil {
		return
	}
	m.ExportsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format), status(err)))
}

// SetDatasetRows records the size of the loaded table
func (m *DashboardMetrics) SetDatasetRows(ctx context.Context, rows int) {
	if m == nil {
		return
	}
	m.DatasetRows.Record(ctx, int64(rows))
}

// RecordHTTP records one completed HTTP request
func (m *DashboardMetrics) RecordHTTP(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status_code", statusCode),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

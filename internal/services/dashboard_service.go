package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ratpdash/internal/charts"
	"ratpdash/internal/config"
	"ratpdash/internal/dataprocessing"
	apierrors "ratpdash/internal/errors"
	"ratpdash/internal/exporter"
	"ratpdash/internal/infrastructure"
	"ratpdash/pkg/contracts/domain"
)

// DashboardTitle is the heading of the dashboard page
const DashboardTitle = "Dashboard RATP - Validations des titres de transport (1er trimestre)"

// DashboardOptions tunes a DashboardService. Zero values fall back to the config defaults.
type DashboardOptions struct {
	TopStops int
	PageSize int
	Metrics  *infrastructure.DashboardMetrics
	Tracer   trace.Tracer
}

// DashboardService computes the dashboard from the table loaded at startup
type DashboardService struct {
	table    *dataprocessing.Table
	topN     int
	pageSize int
	metrics  *infrastructure.DashboardMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewDashboardService creates a dashboard service over table
func NewDashboardService(table *dataprocessing.Table, opts DashboardOptions, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopStops <= 0 {
		opts.TopStops = config.DefaultTopStops
	}
	if opts.PageSize <= 0 {
		opts.PageSize = config.DefaultPageSize
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(infrastructure.InstrumentationName)
	}

	s := &DashboardService{
		table:    table,
		topN:     opts.TopStops,
		pageSize: opts.PageSize,
		metrics:  opts.Metrics,
		tracer:   opts.Tracer,
		logger:   logger.With(slog.String("component", "dashboard_service")),
	}

	if table != nil {
		s.metrics.SetDatasetRows(context.Background(), table.Len())
		s.logger.Info("DashboardService initialized",
			slog.Int("rows", table.Len()),
			slog.Int("months", len(table.Months())),
			slog.Int("top_stops", s.topN),
			slog.Int("page_size", s.pageSize))
	}

	return s
}

// Ready reports whether a table with at least one row is loaded
func (s *DashboardService) Ready() bool {
	return s.table != nil && s.table.Len() > 0
}

// Rows returns the number of loaded rows
func (s *DashboardService) Rows() int {
	if s.table == nil {
		return 0
	}
	return s.table.Len()
}

// Months returns the selectable months in display order
func (s *DashboardService) Months() []string {
	if s.table == nil {
		return []string{}
	}
	return s.table.Months()
}

// Render builds the full dashboard view for one page load.
// Metrics and charts cover the whole table; only the paged table is filtered by month.
func (s *DashboardService) Render(ctx context.Context, filter domain.DashboardFilter) (view *domain.DashboardView, err error) {
	start := time.Now()
	var month string
	ctx, span := s.tracer.Start(ctx, "render")
	defer func() {
		s.metrics.RecordRender(ctx, month, time.Since(start), err)
		endSpan(span, err)
	}()

	if s.table == nil {
		return nil, ErrServiceUnavailable
	}

	month, filtered, err := s.filter(filter.Month)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("dashboard.month", month))

	days, err := dataprocessing.TotalsByDay(s.table)
	if err != nil {
		return nil, apierrors.NewRenderError("failed to compute daily totals", err)
	}
	shares, err := dataprocessing.CategorySharesByMonth(s.table)
	if err != nil {
		return nil, apierrors.NewRenderError("failed to compute category shares", err)
	}
	top, err := dataprocessing.TopStops(s.table, s.topN)
	if err != nil {
		return nil, apierrors.NewRenderError("failed to compute top stops", err)
	}

	page, size := s.paging(filter)
	view = &domain.DashboardView{
		Title:         DashboardTitle,
		Metrics:       dataprocessing.Summarize(s.table),
		Months:        s.table.Months(),
		SelectedMonth: month,
		Table:         filtered.Page(page, size),
		Days:          days,
		Shares:        shares,
		TopStops:      top,
	}

	s.logger.DebugContext(ctx, "dashboard rendered",
		slog.String("month", month),
		slog.Int("filtered_rows", filtered.Len()),
		slog.Duration("duration", time.Since(start)))

	return view, nil
}

// Records returns one page of the rows of the selected month
func (s *DashboardService) Records(ctx context.Context, filter domain.DashboardFilter) (domain.TablePage, error) {
	if s.table == nil {
		return domain.TablePage{}, ErrServiceUnavailable
	}

	_, filtered, err := s.filter(filter.Month)
	if err != nil {
		return domain.TablePage{}, err
	}
	page, size := s.paging(filter)
	return filtered.Page(page, size), nil
}

// Chart computes the projection behind the named chart and renders it as SVG into w
func (s *DashboardService) Chart(ctx context.Context, name charts.Name, w io.Writer) error {
	if s.table == nil {
		return ErrServiceUnavailable
	}

	var (
		view domain.DashboardView
		err  error
	)
	switch name {
	case charts.Days:
		if view.Days, err = dataprocessing.TotalsByDay(s.table); err != nil {
			return apierrors.NewRenderError("failed to compute daily totals", err)
		}
	case charts.Categories:
		if view.Shares, err = dataprocessing.CategorySharesByMonth(s.table); err != nil {
			return apierrors.NewRenderError("failed to compute category shares", err)
		}
	case charts.Stops:
		if view.TopStops, err = dataprocessing.TopStops(s.table, s.topN); err != nil {
			return apierrors.NewRenderError("failed to compute top stops", err)
		}
	default:
		return apierrors.UnknownChart(string(name))
	}

	return s.Plot(ctx, name, &view, w)
}

// Plot renders the named chart of an already rendered view as SVG into w
func (s *DashboardService) Plot(ctx context.Context, name charts.Name, view *domain.DashboardView, w io.Writer) (err error) {
	ctx, span := s.tracer.Start(ctx, "chart", trace.WithAttributes(attribute.String("chart.name", string(name))))
	defer func() {
		s.metrics.RecordChart(ctx, string(name), err)
		endSpan(span, err)
	}()

	err = charts.Render(w, name, view)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, charts.ErrNoData):
		return ErrNoData
	case errors.Is(err, charts.ErrUnknownChart):
		return apierrors.UnknownChart(string(name))
	}
	return apierrors.RenderFailed(fmt.Sprintf("%s chart", name), err)
}

// Legend returns the category colors used by the categories chart
func (s *DashboardService) Legend() []charts.LegendEntry {
	if s.table == nil {
		return []charts.LegendEntry{}
	}
	return charts.CategoryLegend(s.table.Categories())
}

// Export writes every row of month in format to w and returns the attachment file name
func (s *DashboardService) Export(ctx context.Context, format exporter.Format, month string, w io.Writer) (name string, err error) {
	ctx, span := s.tracer.Start(ctx, "export", trace.WithAttributes(attribute.String("export.format", string(format))))
	defer func() {
		s.metrics.RecordExport(ctx, string(format), err)
		endSpan(span, err)
	}()

	if s.table == nil {
		return "", ErrServiceUnavailable
	}

	month, filtered, err := s.filter(month)
	if err != nil {
		return "", err
	}

	sheet := exporter.Sheet{Name: month, Columns: filtered.Columns(), Rows: filtered.Rows()}
	if err := exporter.Write(w, format, sheet); err != nil {
		if errors.Is(err, exporter.ErrUnsupportedFormat) {
			return "", apierrors.UnsupportedFormat(string(format))
		}
		return "", apierrors.ExportFailed(string(format), err)
	}

	s.logger.InfoContext(ctx, "export written",
		slog.String("format", string(format)),
		slog.String("month", month),
		slog.Int("rows", filtered.Len()))

	return exporter.FileName(month, format), nil
}

// filter resolves the selected month, defaulting to the first one, and returns its rows
func (s *DashboardService) filter(month string) (string, *dataprocessing.Table, error) {
	months := s.table.Months()
	if month == "" {
		if len(months) == 0 {
			return "", s.table, nil
		}
		month = months[0]
	}

	filtered, err := dataprocessing.FilterByMonth(s.table, month)
	if errors.Is(err, dataprocessing.ErrUnknownMonth) {
		return "", nil, apierrors.UnknownMonth(month, months)
	}
	if err != nil {
		return "", nil, apierrors.NewRenderError("failed to filter by month", err)
	}
	return month, filtered, nil
}

func (s *DashboardService) paging(filter domain.DashboardFilter) (int, int) {
	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = s.pageSize
	}
	if size > config.MaxPageSize {
		size = config.MaxPageSize
	}
	return page, size
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

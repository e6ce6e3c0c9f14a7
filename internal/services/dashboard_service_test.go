package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"ratpdash/internal/charts"
	"ratpdash/internal/dataprocessing"
	apierrors "ratpdash/internal/errors"
	"ratpdash/internal/exporter"
	"ratpdash/internal/infrastructure"
	"ratpdash/internal/shared/testutil"
	"ratpdash/pkg/contracts/domain"
)

func newTestService(t *testing.T, opts DashboardOptions) *DashboardService {
	t.Helper()

	path := testutil.WriteValidationsCSV(t, testutil.SampleRows())
	table, err := dataprocessing.ParseFile(path, dataprocessing.DefaultParseOptions())
	require.NoError(t, err)

	logger, _ := testutil.NewTestLogger(t)
	return NewDashboardService(table, opts, logger)
}

func TestDashboardService_Render(t *testing.T) {
	svc := newTestService(t, DashboardOptions{})

	tests := []struct {
		name      string
		filter    domain.DashboardFilter
		wantMonth string
		wantRows  int
		wantTotal int
	}{
		{
			name:      "defaults to first month",
			filter:    domain.DashboardFilter{},
			wantMonth: "Février",
			wantRows:  5,
			wantTotal: 5,
		},
		{
			name:      "selected month",
			filter:    domain.DashboardFilter{Month: "Janvier"},
			wantMonth: "Janvier",
			wantRows:  5,
			wantTotal: 5,
		},
		{
			name:      "paged",
			filter:    domain.DashboardFilter{Month: "Janvier", Page: 2, PageSize: 2},
			wantMonth: "Janvier",
			wantRows:  2,
			wantTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.Render(context.Background(), tt.filter)
			require.NoError(t, err)

			assert.Equal(t, DashboardTitle, view.Title)
			assert.Equal(t, tt.wantMonth, view.SelectedMonth)
			assert.Equal(t, []string{"Février", "Janvier"}, view.Months)
			assert.Len(t, view.Table.Rows, tt.wantRows)
			assert.Equal(t, tt.wantTotal, view.Table.TotalRows)

			// metrics and charts ignore the month filter
			assert.Equal(t, 4, view.Metrics.StationCount)
			assert.Equal(t, int64(2550), view.Metrics.TotalValidations)
			assert.Len(t, view.Days, 4)
			assert.Len(t, view.Shares, 6)
			require.Len(t, view.TopStops, 4)
			assert.Equal(t, "Gare du Nord", view.TopStops[0].Stop)
		})
	}
}

func TestDashboardService_Render_FilteredRowsBelongToMonth(t *testing.T) {
	svc := newTestService(t, DashboardOptions{})

	view, err := svc.Render(context.Background(), domain.DashboardFilter{Month: "Janvier"})
	require.NoError(t, err)

	monthCol := -1
	for i, c := range view.Table.Columns {
		if c == domain.ColumnMonth {
			monthCol = i
		}
	}
	require.GreaterOrEqual(t, monthCol, 0)
	for _, row := range view.Table.Rows {
		assert.Equal(t, "Janvier", row[monthCol])
	}
}

func TestDashboardService_Render_UnknownMonth(t *testing.T) {
	svc := newTestService(t, DashboardOptions{})

	_, err := svc.Render(context.Background(), domain.DashboardFilter{Month: "Mars"})
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, apierrors.CodeUnknownMonth, apiErr.ErrorCode)
}

func TestDashboardService_TopStopsLimit(t *testing.T) {
	svc := newTestService(t, DashboardOptions{TopStops: 2})

	view, err := svc.Render(context.Background(), domain.DashboardFilter{})
	require.NoError(t, err)
	require.Len(t, view.TopStops, 2)
	assert.Equal(t, "Gare du Nord", view.TopStops[0].Stop)
	assert.Equal(t, "Châtelet", view.TopStops[1].Stop)
}

func TestDashboardService_NoTable(t *testing.T) {
	svc := NewDashboardService(nil, DashboardOptions{}, nil)

	assert.False(t, svc.Ready())
	assert.Equal(t, 0, svc.Rows())
	assert.Empty(t, svc.Months())
	assert.Empty(t, svc.Legend())

	_, err := svc.Render(context.Background(), domain.DashboardFilter{})
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	_, err = svc.Records(context.Background(), domain.DashboardFilter{})
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	err = svc.Chart(context.Background(), charts.Days, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	_, err = svc.Export(context.Background(), exporter.FormatCSV, "", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestDashboardService_Records(t *testing.T) {
	svc := newTestService(t, DashboardOptions{PageSize: 3})

	page, err := svc.Records(context.Background(), domain.DashboardFilter{Month: "Février"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, 5, page.TotalRows)
	assert.Len(t, page.Rows, 3)
	assert.True(t, page.HasNext())
}

func TestDashboardService_Chart(t *testing.T) {
	svc := newTestService(t, DashboardOptions{})

	for _, name := range charts.All {
		t.Run(string(name), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, svc.Chart(context.Background(), name, &buf))
			assert.Contains(t, buf.String(), "<svg")
		})
	}

	err := svc.Chart(context.Background(), charts.Name("pie"), &bytes.Buffer{})
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestDashboardService_Legend(t *testing.T) {
	svc := newTestService(t, DashboardOptions{})

	legend := svc.Legend()
	require.Len(t, legend, 3)
	assert.Equal(t, "Amethyste", legend[0].Category)
	assert.Equal(t, "Navigo", legend[2].Category)
}

func TestDashboardService_Export(t *testing.T) {
	svc := newTestService(t, DashboardOptions{})

	tests := []struct {
		name     string
		format   exporter.Format
		month    string
		wantFile string
	}{
		{"csv default month", exporter.FormatCSV, "", "validations-Février.csv"},
		{"csv january", exporter.FormatCSV, "Janvier", "validations-Janvier.csv"},
		{"xlsx", exporter.FormatXLSX, "Janvier", "validations-Janvier.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			name, err := svc.Export(context.Background(), tt.format, tt.month, &buf)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, name)
			assert.NotZero(t, buf.Len())
		})
	}

	t.Run("csv content", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := svc.Export(context.Background(), exporter.FormatCSV, "Janvier", &buf)
		require.NoError(t, err)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		assert.Len(t, lines, 6)
		assert.Contains(t, string(lines[0]), "jour;")
		assert.Contains(t, buf.String(), "Gare du Nord")
		assert.NotContains(t, buf.String(), "Nation")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := svc.Export(context.Background(), exporter.Format("pdf"), "", &bytes.Buffer{})
		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, apierrors.CodeUnsupportedFormat, apiErr.ErrorCode)
	})

	t.Run("unknown month", func(t *testing.T) {
		_, err := svc.Export(context.Background(), exporter.FormatCSV, "Mars", &bytes.Buffer{})
		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, apierrors.CodeUnknownMonth, apiErr.ErrorCode)
	})
}

func TestDashboardService_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := infrastructure.NewDashboardMetrics(provider.Meter("test"))
	require.NoError(t, err)

	svc := newTestService(t, DashboardOptions{Metrics: metrics})

	_, err = svc.Render(context.Background(), domain.DashboardFilter{})
	require.NoError(t, err)
	_, err = svc.Render(context.Background(), domain.DashboardFilter{Month: "Mars"})
	require.Error(t, err)
	require.NoError(t, svc.Chart(context.Background(), charts.Stops, &bytes.Buffer{}))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	var rows int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[md.Name] += dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					rows = dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(2), sums["dashboard_renders_total"])
	assert.Equal(t, int64(1), sums["chart_renders_total"])
	assert.Equal(t, int64(10), rows)
}

func TestDashboardService_PlotView(t *testing.T) {
	svc := newTestService(t, DashboardOptions{})

	view, err := svc.Render(context.Background(), domain.DashboardFilter{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Plot(context.Background(), charts.Categories, view, &buf))
	assert.Contains(t, buf.String(), "<svg")

	err = svc.Plot(context.Background(), charts.Days, &domain.DashboardView{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoData)
}

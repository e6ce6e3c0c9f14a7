package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"ratpdash/internal/infrastructure"
	"ratpdash/internal/shared/testutil"
)

func TestOTelMiddleware_RecordsRoute(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := infrastructure.NewDashboardMetrics(provider.Meter("test"))
	require.NoError(t, err)

	logger, _ := testutil.NewTestLogger(t)
	m := NewOTelMiddleware(nil, metrics, logger)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/charts/{name}.svg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/charts/days.svg", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "http_requests_total" {
				continue
			}
			sum := md.Data.(metricdata.Sum[int64])
			require.Len(t, sum.DataPoints, 1)
			route, ok := sum.DataPoints[0].Attributes.Value("route")
			require.True(t, ok)
			assert.Equal(t, "/charts/{name}.svg", route.AsString())
			found = true
		}
	}
	assert.True(t, found)
}

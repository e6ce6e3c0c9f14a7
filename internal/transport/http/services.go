package http

import (
	"context"
	"io"

	"ratpdash/internal/charts"
	"ratpdash/internal/exporter"
	"ratpdash/internal/services"
	"ratpdash/pkg/contracts"
	"ratpdash/pkg/contracts/domain"
)

// DashboardService defines the dashboard operations used by the handlers
type DashboardService interface {
	Render(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardView, error)
	Records(ctx context.Context, filter domain.DashboardFilter) (domain.TablePage, error)
	Months() []string
	Chart(ctx context.Context, name charts.Name, w io.Writer) error
	Plot(ctx context.Context, name charts.Name, view *domain.DashboardView, w io.Writer) error
	Legend() []charts.LegendEntry
	Export(ctx context.Context, format exporter.Format, month string, w io.Writer) (string, error)
}

// HealthService defines the health operations used by the handlers
type HealthService interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() contracts.VersionInfo
}

// Package api contains the query contracts of the dashboard HTTP API.
package api

import (
	"ratpdash/pkg/contracts/domain"
)

// DashboardRequest represents the query parameters of the dashboard page and API
type DashboardRequest struct {
	Month    string `json:"month" form:"month"`
	Page     int    `json:"page" form:"page" validate:"min=1"`
	PageSize int    `json:"page_size" form:"page_size" validate:"min=1,max=1000"`
}

// Filter converts the request into a domain filter
func (r DashboardRequest) Filter() domain.DashboardFilter {
	return domain.DashboardFilter{
		Month:    r.Month,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

// ExportRequest represents the parameters of a filtered-table export
type ExportRequest struct {
	Format string `json:"format" form:"format" validate:"required,oneof=csv xlsx"`
	Month  string `json:"month" form:"month"`
}

// ChartRequest selects one of the dashboard charts
type ChartRequest struct {
	Name string `json:"name" form:"name" validate:"required,oneof=days categories stops"`
}

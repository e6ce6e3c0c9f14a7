package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"ratpdash/internal/charts"
	apierrors "ratpdash/internal/errors"
	mw "ratpdash/internal/middleware"
	"ratpdash/internal/services"
	v1 "ratpdash/pkg/contracts/api/v1"
	"ratpdash/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"comma": comma,
	"css":   func(s string) template.CSS { return template.CSS(s) },
}).ParseFS(templateFS, "templates/dashboard.html"))

// chartBlock is one chart section of the page
type chartBlock struct {
	Title  string
	SVG    template.HTML
	Legend []charts.LegendEntry
}

// dashboardPage is the data bound to the dashboard template
type dashboardPage struct {
	View        *domain.DashboardView
	Charts      []chartBlock
	CountColumn int
	PrevURL     string
	NextURL     string
}

// DashboardHandler renders the dashboard HTML page
type DashboardHandler struct {
	service      DashboardService
	validator    *mw.QueryValidator
	pageSize     int
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard page handler
func NewDashboardHandler(service DashboardService, pageSize int, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		validator:    mw.NewQueryValidator(),
		pageSize:     pageSize,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// ServeHTTP handles GET /
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := v1.DashboardRequest{Page: 1, PageSize: h.pageSize}
	if err := h.validator.Bind(r.URL.Query(), &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Render(r.Context(), req.Filter())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	blocks, err := h.renderCharts(r.Context(), view)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page := dashboardPage{
		View:        view,
		Charts:      blocks,
		CountColumn: indexOf(view.Table.Columns, domain.ColumnCount),
	}
	if view.Table.HasPrev() {
		page.PrevURL = pageURL(view, view.Table.Page-1)
	}
	if view.Table.HasNext() {
		page.NextURL = pageURL(view, view.Table.Page+1)
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.RenderFailed("dashboard page", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// renderCharts plots the three charts of view concurrently.
// A chart with no data is left empty rather than failing the page.
func (h *DashboardHandler) renderCharts(ctx context.Context, view *domain.DashboardView) ([]chartBlock, error) {
	blocks := make([]chartBlock, len(charts.All))
	g, ctx := errgroup.WithContext(ctx)

	for i, name := range charts.All {
		blocks[i].Title = name.Title()
		g.Go(func() error {
			var buf bytes.Buffer
			err := h.service.Plot(ctx, name, view, &buf)
			if errors.Is(err, services.ErrNoData) {
				return nil
			}
			if err != nil {
				return err
			}
			blocks[i].SVG = template.HTML(buf.String())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range charts.All {
		if name == charts.Categories && blocks[i].SVG != "" {
			blocks[i].Legend = h.service.Legend()
		}
	}
	return blocks, nil
}

func pageURL(view *domain.DashboardView, page int) string {
	q := url.Values{}
	q.Set("month", view.SelectedMonth)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(view.Table.PageSize))
	return "/?" + q.Encode()
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

// comma formats an integer with , as thousands separator
func comma(v interface{}) string {
	switch n := v.(type) {
	case int:
		return humanize.Comma(int64(n))
	case int64:
		return humanize.Comma(n)
	}
	return fmt.Sprint(v)
}

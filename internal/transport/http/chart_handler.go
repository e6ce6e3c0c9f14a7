package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ratpdash/internal/charts"
	apierrors "ratpdash/internal/errors"
	mw "ratpdash/internal/middleware"
	v1 "ratpdash/pkg/contracts/api/v1"
)

// ChartHandler serves the dashboard charts as standalone SVG documents
type ChartHandler struct {
	service      DashboardService
	validator    *mw.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		validator:    mw.NewQueryValidator(),
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{name}.svg", h.GetChart)
	return r
}

// GetChart handles GET /charts/{name}.svg
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	base := chi.URLParam(r, "name")
	req := v1.ChartRequest{Name: base}
	if err := h.validator.ValidateStruct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.UnknownChart(base))
		return
	}

	name, err := charts.ParseName(req.Name)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.UnknownChart(base))
		return
	}

	var buf bytes.Buffer
	if err := h.service.Chart(r.Context(), name, &buf); err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

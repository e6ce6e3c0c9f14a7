package http

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "ratpdash/internal/errors"
	"ratpdash/internal/exporter"
	mw "ratpdash/internal/middleware"
	v1 "ratpdash/pkg/contracts/api/v1"
)

// DataHandler serves the dashboard data as JSON and exports, with RFC 7807 errors
type DataHandler struct {
	service      DashboardService
	validator    *mw.QueryValidator
	pageSize     int
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DashboardService, pageSize int, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		validator:    mw.NewQueryValidator(),
		pageSize:     pageSize,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/dashboard", h.GetDashboard)
		r.Get("/months", h.GetMonths)
		r.Get("/records", h.GetRecords)
		r.Get("/legend", h.GetLegend)
	})

	r.Get("/export/{format}", h.Export)

	return r
}

// bindDashboard decodes the month and paging query parameters
func (h *DataHandler) bindDashboard(r *http.Request) (v1.DashboardRequest, error) {
	req := v1.DashboardRequest{Page: 1, PageSize: h.pageSize}
	err := h.validator.Bind(r.URL.Query(), &req)
	return req, err
}

// GetDashboard handles GET /api/dashboard
func (h *DataHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := h.bindDashboard(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Render(r.Context(), req.Filter())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	render.JSON(w, r, view)
}

// GetMonths handles GET /api/months
func (h *DataHandler) GetMonths(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"months": h.service.Months(),
	})
}

// GetRecords handles GET /api/records
func (h *DataHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	req, err := h.bindDashboard(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := h.service.Records(r.Context(), req.Filter())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	render.JSON(w, r, page)
}

// GetLegend handles GET /api/legend
func (h *DataHandler) GetLegend(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"categories": h.service.Legend(),
	})
}

// Export handles GET /api/export/{format}
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	query.Del("format")

	req := v1.ExportRequest{Format: chi.URLParam(r, "format")}
	if err := h.validator.Bind(query, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.UnsupportedFormat(req.Format))
		return
	}

	// buffered so a failure can still be reported as a problem document
	var buf bytes.Buffer
	name, err := h.service.Export(r.Context(), format, req.Month, &buf)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "serving export",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("format", string(format)),
		slog.String("file", name),
		slog.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

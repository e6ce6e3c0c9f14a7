package http

import (
	"net/http"

	apierrors "ratpdash/internal/errors"
)

// MetricsHandler exposes the Prometheus scrape endpoint
type MetricsHandler struct {
	handler      http.Handler
	errorHandler *apierrors.ErrorHandler
}

// NewMetricsHandler wraps the exporter handler; a nil handler means metrics are disabled
func NewMetricsHandler(handler http.Handler, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	return &MetricsHandler{handler: handler, errorHandler: errorHandler}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.handler == nil {
		h.errorHandler.NotFound(w, r)
		return
	}
	h.handler.ServeHTTP(w, r)
}

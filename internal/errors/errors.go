package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes
const (
	CodeInvalidParameter  = "INVALID_PARAMETER"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeUnknownMonth      = "UNKNOWN_MONTH"
	CodeUnknownChart      = "UNKNOWN_CHART"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeNotFound          = "NOT_FOUND"
	CodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
	CodeRenderFailed      = "RENDER_FAILED"
	CodeExportFailed      = "EXPORT_FAILED"
	CodeDataUnavailable   = "DATA_UNAVAILABLE"
)

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidParameter = New(http.StatusBadRequest, CodeInvalidParameter, "Invalid parameter value")
	ErrValidationFailed = New(http.StatusBadRequest, CodeValidationFailed, "Request validation failed")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "Resource not found")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimited, "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, CodeInternal, "Internal server error")

	// 503 Service Unavailable
	ErrDataUnavailable = New(http.StatusServiceUnavailable, CodeDataUnavailable, "Validations table is not loaded")
)

// InvalidParameter creates an invalid parameter error naming the parameter
func InvalidParameter(name, value string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidParameter,
		fmt.Sprintf("invalid value for %s", name),
		ValidationError{Field: name, Message: fmt.Sprintf("%q is not accepted", value)})
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// UnknownMonth is returned when a month filter names a month absent from the data
func UnknownMonth(month string, available []string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeUnknownMonth,
		fmt.Sprintf("month %q is not present in the data", month),
		map[string]interface{}{"month": month, "available": available})
}

// UnknownChart is returned for a chart name outside days, categories and stops
func UnknownChart(name string) *APIError {
	return NewWithDetails(http.StatusNotFound, CodeUnknownChart,
		fmt.Sprintf("chart %q does not exist", name), name)
}

// UnsupportedFormat is returned for an export format other than csv or xlsx
func UnsupportedFormat(format string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeUnsupportedFormat,
		fmt.Sprintf("export format %q is not supported", format), format)
}

// RenderFailed wraps a failure while building a view or chart
func RenderFailed(what string, err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, CodeRenderFailed,
		fmt.Sprintf("failed to render %s", what), err.Error())
}

// ExportFailed wraps a failure while writing an export
func ExportFailed(format string, err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, CodeExportFailed,
		fmt.Sprintf("failed to export %s", format), err.Error())
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error:   err,
	}
}

// Render implements the render.Renderer interface
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		CodeValidationFailed,
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(NewErrorResponse(err))
}

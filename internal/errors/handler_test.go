package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratpdash/internal/shared/testutil"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantLevel  slog.Level
	}{
		{
			name:       "unknown month",
			err:        UnknownMonth("Mars", []string{"Janvier"}),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeUnknownMonth,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "wrapped api error",
			err:        fmt.Errorf("chart handler: %w", UnknownChart("pie")),
			wantStatus: http.StatusNotFound,
			wantType:   TypeUnknownChart,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "parsing app error",
			err:        NewParsingError("missing required columns: Mois", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDataCorrupted,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "render app error",
			err:        NewRenderError("svg", errors.New("no series")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeRenderFailed,
			wantLevel:  slog.LevelError,
		},
		{
			name:       "deadline",
			err:        fmt.Errorf("render: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantLevel:  slog.LevelError,
		},
		{
			name:       "plain error",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantLevel:  slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			h := NewErrorHandler(logger, false)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			h.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			got := decodeProblem(t, w)
			assert.Equal(t, tt.wantType, got["type"])
			assert.Equal(t, "/api/dashboard", got["instance"])
			assert.Contains(t, got, "trace_id")
			assert.NotContains(t, got, "stack")
			testutil.AssertLogContains(t, logs, tt.wantLevel, "request failed")
		})
	}
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, 0, w.Body.Len())
	assert.Empty(t, logs.Entries())
}

func TestErrorHandler_InternalDetailsHidden(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	problem := h.ErrorToProblem(NewStorageError("open", errors.New("/secret/path denied")), r)

	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.NotContains(t, problem.Detail, "/secret/path")
}

func TestErrorHandler_StackInDevelopment(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	assert.Contains(t, decodeProblem(t, w), "stack")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, w)["type"])

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/dashboard", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decodeProblem(t, w)["detail"], "DELETE")
}

func TestErrorHandler_RecoveryMiddleware(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("chart exploded")
	})

	w := httptest.NewRecorder()
	h.RecoveryMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/charts/days.svg", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "chart exploded")
	testutil.AssertLogContains(t, logs, slog.LevelError, "panic recovered")
}

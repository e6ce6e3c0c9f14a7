package http

import (
	"errors"
	"net/http"

	apierrors "ratpdash/internal/errors"
	"ratpdash/internal/services"
)

// serviceError maps sentinel service errors onto API errors
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrServiceUnavailable):
		return apierrors.ErrDataUnavailable
	case errors.Is(err, services.ErrNoData):
		return apierrors.New(http.StatusNotFound, apierrors.CodeNotFound, "No validations to display")
	}
	return err
}

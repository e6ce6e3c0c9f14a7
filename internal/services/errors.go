package services

import "errors"

// Dashboard service errors
var (
	// ErrNoData is returned when the loaded table has no rows to project
	ErrNoData = errors.New("no validations loaded")

	// ErrServiceUnavailable is returned when the service was built without a table
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

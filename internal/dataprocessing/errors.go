package dataprocessing

import "errors"

var (
	// ErrUnknownMonth is returned when a filter names a month absent from the data
	ErrUnknownMonth = errors.New("unknown month")

	// ErrInvalidDate is returned when a day value matches no accepted layout
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidLabel is returned when a month, stop or category cannot be held as a label
	ErrInvalidLabel = errors.New("invalid label")

	// ErrInvalidCount is returned when a validation count is not a non-negative integer
	ErrInvalidCount = errors.New("invalid validation count")
)

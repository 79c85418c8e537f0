package services

import "errors"

// Validation errors surfaced to handlers as 400s.
var (
	// ErrInvalidDateRange is returned when an agreement's end date is not
	// after its start date.
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// ErrInvalidDate is returned when a wire date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)

package errors

import "errors"

var (
	ErrNotFound = errors.New("house not found")

	ErrInvalidID = errors.New("invalid house ID format")

	// ErrAlreadyBooked is returned when a listing cannot transition to booked
	// because it already is.
	ErrAlreadyBooked = errors.New("house already booked")
)

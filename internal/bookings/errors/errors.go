package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrCapacityExceeded = errors.New("no rooms left for the requested dates")

	// ErrStatusConflict means the booking exists but was not in the expected status.
	ErrStatusConflict = errors.New("booking status changed concurrently")

	ErrLockHeld = errors.New("booking lock is held by another request")

	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
)

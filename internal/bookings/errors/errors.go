package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrDuplicateKey = errors.New("booking already exists for this room and start time")

	ErrTimeConflict = errors.New("booking time conflicts with existing booking")

	ErrAlreadyResolved = errors.New("booking has already been approved or rejected")

	ErrInvalidTimeRange = errors.New("end time must be after start time")

	ErrLockHeld = errors.New("booking lock is held by another request")
)

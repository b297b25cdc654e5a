package tracker

import "errors"

var (
	// ErrPersist wraps slot write failures. The store state is left unchanged.
	ErrPersist = errors.New("persist tracker")
	// ErrInvalidData is returned when a stored blob fails validation.
	ErrInvalidData = errors.New("invalid tracker data")
	// ErrUnavailable is returned by mutations while the slot cannot be read.
	ErrUnavailable = errors.New("tracker data unavailable")
)

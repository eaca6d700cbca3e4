package event

import "errors"

var (
	// ErrStoreUnavailable reports that the backing database could not be
	// opened, read, or written.
	ErrStoreUnavailable = errors.New("event store unavailable")

	// ErrEmptyType reports an empty event type.
	ErrEmptyType = errors.New("event type must not be empty")
)

package profilestore

import "errors"

var (
	// ErrProfileNotFound is returned when no profile exists for the given id.
	ErrProfileNotFound = errors.New("connection profile not found")

	// ErrMissingID is returned when saving a profile without an id.
	ErrMissingID = errors.New("connection profile id is required")
)

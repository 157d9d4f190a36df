package gateway

import "errors"

var (
	// ErrEmptyCommand is returned when the raw command contains no tokens.
	ErrEmptyCommand = errors.New("empty command")
)

package registry

import "errors"

var (
	// ErrNotConnected is returned when an operation references a connection
	// id with no live session in the registry.
	ErrNotConnected = errors.New("connection is not established")

	// ErrConnectFailed is returned when a session could not be opened within
	// the configured attempt budget. It wraps the underlying cause.
	ErrConnectFailed = errors.New("failed to connect to redis server")

	// ErrInvalidProfile is returned when a connection profile fails validation.
	ErrInvalidProfile = errors.New("invalid connection profile")
)

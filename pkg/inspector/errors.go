package inspector

import "errors"

var (
	// ErrKeyNotFound is returned by KeyDetails when the key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)

package access

import "errors"

// Sentinel kinds for access control failures.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("access denied")
)

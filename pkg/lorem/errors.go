package lorem

import "errors"

// Sentinel errors for common error conditions
var (
	// Vocabulary errors
	ErrInvalidPool = errors.New("invalid word pool")

	// Request parameter errors
	ErrInvalidRange = errors.New("invalid range")

	// Transform errors
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidArgument  = errors.New("invalid operation argument")
)

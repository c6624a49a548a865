package activity

import "errors"

var (
	// ErrActivityNotFound indicates no activity holds the requested serial.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput indicates an unusable serial.
	ErrInvalidInput = errors.New("invalid activity input")
)

package repository

import "errors"

var (
	// ErrInvalidKey is returned when a log key cannot address a collection
	ErrInvalidKey = errors.New("invalid log key")

	// ErrUnknownDriver is returned when no backend matches the configured driver
	ErrUnknownDriver = errors.New("unknown storage driver")
)

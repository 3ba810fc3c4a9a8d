package service

import "errors"

var (
	// ErrInvalidStatus is returned when a workflow decision names a status
	// outside {approved, rejected}.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidInput is returned when a request is missing required fields
	// or is otherwise malformed.
	ErrInvalidInput = errors.New("invalid input")
)

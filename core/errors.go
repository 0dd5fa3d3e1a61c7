package core

import "errors"

// ErrInvalidArgument is matched by every input validation failure of a Syncer
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError describes a graph node that cannot be synced
type InvalidArgumentError struct {
	Field   string
	Message string
}

// NewInvalidArgumentError creates an InvalidArgumentError for field
func NewInvalidArgumentError(field, message string) *InvalidArgumentError {
	return &InvalidArgumentError{
		Field:   field,
		Message: message,
	}
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// IsInvalidArgument reports whether err was caused by invalid graph node input
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

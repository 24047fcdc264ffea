// Package storeerr defines the storage failure taxonomy shared by every
// store implementation and the layers that classify errors for callers.
package storeerr

import (
	"errors"
	"fmt"
)

// ErrStorageFailure matches, under errors.Is, every error produced when the
// underlying store rejected or failed an operation.
var ErrStorageFailure = errors.New("storage failure")

// Error wraps a driver error with the gateway operation that produced it.
// Unwrap returns the driver error untouched so callers can still inspect it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageFailure.Error(), e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorageFailure) succeed for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrStorageFailure
}

// Wrap returns nil for a nil err, otherwise an *Error for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}

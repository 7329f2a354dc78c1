// Package errors provides the application error model: a small builder API on
// top of cockroachdb/errors with sentinel marks that drive HTTP status mapping.
package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used to classify failures across the application.
// Errors are tagged with these via Mark and checked with errors.Is.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrPermissionDenied = errors.New("permission_denied")
	ErrInternal         = errors.New("internal_error")
	ErrSystem           = errors.New("system_error")
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal) || errors.Is(err, ErrSystem)
}

// Package errors provides error handling for phi.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI users
//   - Network portability, so errors raised inside a cut worker keep their
//     identity when surfaced by the coordinator
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := evaluate(); err != nil {
//	    return errors.Wrapf(err, "evaluate cut %d", i)
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrIncomparable) {
//	    // results from different networks
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	HasAssertionFailure              = crdb.HasAssertionFailure
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Common sentinel errors for use across phi.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrIncomparable indicates an ordering was requested between results
	// computed over different networks
	ErrIncomparable = New("incomparable results")

	// ErrInvalidPartition indicates parts of a partition claim the same index
	ErrInvalidPartition = New("invalid partition")

	// ErrInvalidRequest indicates the input was malformed or out of range
	ErrInvalidRequest = New("invalid request")

	// ErrUnsupported indicates a configuration selects behaviour this module does not implement
	ErrUnsupported = New("unsupported")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// IsIncomparable checks if an error is or wraps ErrIncomparable
func IsIncomparable(err error) bool {
	return err != nil && Is(err, ErrIncomparable)
}

// IsInvalidPartition checks if an error is or wraps ErrInvalidPartition
func IsInvalidPartition(err error) bool {
	return err != nil && Is(err, ErrInvalidPartition)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewInvalidPartitionError creates an invalid-partition error with a formatted message
func NewInvalidPartitionError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidPartition, Newf(format, args...).Error())
}

// NewUnsupportedError creates an unsupported error with a formatted message
func NewUnsupportedError(format string, args ...interface{}) error {
	return Wrap(ErrUnsupported, Newf(format, args...).Error())
}

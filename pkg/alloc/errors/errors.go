// Package errors provides error types and error codes for the alloc package.
// This is a leaf package with no internal dependencies so that shells (API,
// CLI) can classify failures without importing the allocator itself.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents the type of error that occurred.
type ErrorCode int

const (
	// ErrDuplicateName indicates a create was requested for a name already in the file table.
	ErrDuplicateName ErrorCode = iota + 1

	// ErrInsufficientSpace indicates the pool does not have enough free blocks
	// (index block included) to satisfy a create.
	ErrInsufficientSpace

	// ErrNotFound indicates the named file is absent from the file table.
	ErrNotFound

	// ErrInvalidInput indicates a malformed argument: empty name, negative size,
	// or a non-positive pool geometry.
	ErrInvalidInput
)

// String returns a human-readable name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrDuplicateName:
		return "DuplicateName"
	case ErrInsufficientSpace:
		return "InsufficientSpace"
	case ErrNotFound:
		return "NotFound"
	case ErrInvalidInput:
		return "InvalidInput"
	default:
		return fmt.Sprintf("Unknown(%d)", e)
	}
}

// StoreError represents an allocation store error with an error code.
type StoreError struct {
	Code    ErrorCode
	Message string
	Name    string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name: %s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ============================================================================
// Factory Functions
// ============================================================================

// NewDuplicateNameError creates a DuplicateName error.
func NewDuplicateNameError(name string) *StoreError {
	return &StoreError{
		Code:    ErrDuplicateName,
		Message: "file already exists",
		Name:    name,
	}
}

// NewInsufficientSpaceError creates an InsufficientSpace error.
func NewInsufficientSpaceError(name string, needed, free int) *StoreError {
	return &StoreError{
		Code:    ErrInsufficientSpace,
		Message: fmt.Sprintf("need %d blocks, %d free", needed, free),
		Name:    name,
	}
}

// NewNotFoundError creates a NotFound error.
func NewNotFoundError(name string) *StoreError {
	return &StoreError{
		Code:    ErrNotFound,
		Message: "file not found",
		Name:    name,
	}
}

// NewInvalidInputError creates an InvalidInput error.
func NewInvalidInputError(message string) *StoreError {
	return &StoreError{
		Code:    ErrInvalidInput,
		Message: message,
	}
}

// ============================================================================
// Error Type Checking Helpers
// ============================================================================

// CodeOf returns the ErrorCode carried by err, or 0 if err is not a StoreError.
func CodeOf(err error) ErrorCode {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return 0
}

// IsDuplicateNameError returns true if the error is a DuplicateName error.
func IsDuplicateNameError(err error) bool {
	return CodeOf(err) == ErrDuplicateName
}

// IsInsufficientSpaceError returns true if the error is an InsufficientSpace error.
func IsInsufficientSpaceError(err error) bool {
	return CodeOf(err) == ErrInsufficientSpace
}

// IsNotFoundError returns true if the error is a NotFound error.
func IsNotFoundError(err error) bool {
	return CodeOf(err) == ErrNotFound
}

// IsInvalidInputError returns true if the error is an InvalidInput error.
func IsInvalidInputError(err error) bool {
	return CodeOf(err) == ErrInvalidInput
}

package nav

import (
	"errors"
	"fmt"
)

// NavError represents an error detected by a navigation operation.
//
// Navigation errors include:
//   - Out-of-range index: insert/removeAt/swap/move outside the stack
//   - Not found: unknown entry id or tab id
//   - Invariant violation: an operation that would leave a tab's stack empty
//   - Invalid config: a tab set that failed construction-time validation
//
// NavError includes structured fields for diagnostics and recovery.
// All navigation errors are local, synchronous, and recoverable by the
// caller; none are process-fatal and nothing is retried internally.
type NavError struct {
	// Code identifies the error category.
	Code NavErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the offending index (for out-of-range errors).
	Index int

	// ID identifies the offending entry or tab (for not-found errors).
	ID string
}

// NavErrorCode categorizes navigation errors.
type NavErrorCode string

const (
	// ErrCodeIndexOutOfRange indicates an index outside the valid range.
	ErrCodeIndexOutOfRange NavErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeNotFound indicates an unknown entry id or tab id.
	ErrCodeNotFound NavErrorCode = "NOT_FOUND"

	// ErrCodeInvariantViolation indicates an operation that would break a
	// structural invariant (e.g. leaving a tab's stack empty).
	ErrCodeInvariantViolation NavErrorCode = "INVARIANT_VIOLATION"

	// ErrCodeInvalidConfig indicates a tab configuration that failed
	// construction-time validation.
	ErrCodeInvalidConfig NavErrorCode = "INVALID_CONFIG"
)

// Error implements the error interface.
func (e *NavError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
	}
	if e.Code == ErrCodeIndexOutOfRange {
		return fmt.Sprintf("%s: %s (index=%d)", e.Code, e.Message, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsOutOfRange returns true if the error is an out-of-range index error.
// Uses errors.As to handle wrapped errors.
func IsOutOfRange(err error) bool {
	var ne *NavError
	if errors.As(err, &ne) {
		return ne.Code == ErrCodeIndexOutOfRange
	}
	return false
}

// IsNotFound returns true if the error is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var ne *NavError
	if errors.As(err, &ne) {
		return ne.Code == ErrCodeNotFound
	}
	return false
}

// IsInvariantViolation returns true if the error is an invariant
// violation. Uses errors.As to handle wrapped errors.
func IsInvariantViolation(err error) bool {
	var ne *NavError
	if errors.As(err, &ne) {
		return ne.Code == ErrCodeInvariantViolation
	}
	return false
}

// NewOutOfRangeError creates a NavError for an index outside [0, size].
func NewOutOfRangeError(op string, index, size int) *NavError {
	return &NavError{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("%s: index out of range [0, %d]", op, size),
		Index:   index,
	}
}

// NewNotFoundError creates a NavError for an unknown entry or tab id.
func NewNotFoundError(op, id string) *NavError {
	return &NavError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s: no such id", op),
		ID:      id,
	}
}

// NewInvariantError creates a NavError for an invariant violation.
func NewInvariantError(op, detail string) *NavError {
	return &NavError{
		Code:    ErrCodeInvariantViolation,
		Message: fmt.Sprintf("%s: %s", op, detail),
	}
}

// Package shared holds domain concepts used by every bounded context:
// money, sentinel errors and the unit-of-work contract.
//
// Sentinel errors support errors.Is checks across layers; DomainError adds
// the entity and field context the API layer needs without dragging HTTP
// concepts into the domain.
package shared

import "errors"

var (
	// ErrNotFound signals an unresolved entity reference.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a state conflict, e.g. re-confirming an order.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput signals a failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized signals a missing authenticated owner.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden signals an authenticated but not permitted action.
	ErrForbidden = errors.New("forbidden")
)

// DomainError carries business context alongside a sentinel error.
type DomainError struct {
	Err     error  // wrapped sentinel, for errors.Is
	Entity  string // entity the error refers to ("product", "order", ...)
	Field   string // optional field name for validation errors
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

// NewNotFoundError creates a "not found" error for the named entity.
func NewNotFoundError(entity string) error {
	return &DomainError{Err: ErrNotFound, Entity: entity, Message: entity + " not found"}
}

// NewConflictError creates a state-conflict error.
func NewConflictError(entity, message string) error {
	return &DomainError{Err: ErrConflict, Entity: entity, Message: message}
}

// NewValidationError creates a field-level validation error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{Err: ErrInvalidInput, Entity: entity, Field: field, Message: reason}
}

// NewForbiddenError creates a permission error.
func NewForbiddenError(entity, reason string) error {
	return &DomainError{Err: ErrForbidden, Entity: entity, Message: reason}
}

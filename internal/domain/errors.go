package domain

import "fmt"

// NotFoundError indicates that a referenced entity does not exist, or that
// the caller has no visibility over it. The two cases are intentionally
// indistinguishable at the API boundary.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError creates a NotFoundError for the given resource and identifier.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError indicates well-formed but semantically invalid input.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewInvalidStateError creates a ValidationError describing a refused status
// transition.
func NewInvalidStateError(from, to string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("invalid status transition from %s to %s", from, to)}
}

// SelfRentalError indicates an owner attempting to book their own item.
// It is surfaced to clients as a 404, the same as NotFoundError, but kept as
// a distinct type so callers and tests can assert on the actual cause.
type SelfRentalError struct {
	ItemID string
	UserID string
}

// NewSelfRentalError creates a SelfRentalError for the given item and user.
func NewSelfRentalError(itemID, userID string) *SelfRentalError {
	return &SelfRentalError{ItemID: itemID, UserID: userID}
}

func (e *SelfRentalError) Error() string {
	return fmt.Sprintf("owner %s cannot book own item %s", e.UserID, e.ItemID)
}

// ConflictError indicates a write that lost against a concurrent update.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

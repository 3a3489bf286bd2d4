package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
)

// FieldError reports a validation failure bound to a single input field.
// The HTTP layer renders it the same way as binding validation errors.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError creates a new field-level error
func NewFieldError(field, code, message string) *FieldError {
	return &FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	}
}

// StateConflictError is returned when an operation is refused because other
// records still depend on the target. Subject names the target and Details
// carries the blocking counts.
type StateConflictError struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Subject string           `json:"subject,omitempty"`
	Details map[string]int64 `json:"details"`
}

// Error implements the error interface
func (e *StateConflictError) Error() string {
	return e.Message
}

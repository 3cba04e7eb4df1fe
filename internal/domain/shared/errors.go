// Package shared holds the coded error type the HTTP layer maps to status
// codes. Domain packages prefer plain sentinel errors; DomainError is for
// conditions that need a stable machine-readable code across the API.
package shared

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
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConflict     = NewDomainError("CONFLICT", "Resource was modified by another process")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

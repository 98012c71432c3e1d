package shared

import "net/http"

// Error kinds exposed in API responses as the "type" tag.
const (
	KindModel      = "model"
	KindValidation = "validation"
	KindParam      = "param"
	KindOrder      = "order"
	KindReview     = "review"
	KindQuery      = "query"
	KindJob        = "job"
)

// DomainError represents a domain-level error carrying an HTTP status and a
// programmatic type tag for API clients
type DomainError struct {
	Status  int    `json:"status"`
	Kind    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(status int, kind, code, message string) *DomainError {
	return &DomainError{
		Status:  status,
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a 400 validation error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(http.StatusBadRequest, KindValidation, code, message)
}

// NewNotFoundError creates a 404 model error
func NewNotFoundError(code, message string) *DomainError {
	return NewDomainError(http.StatusNotFound, KindModel, code, message)
}

// Common domain errors
var (
	ErrNotFound      = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError(http.StatusConflict, KindModel, "ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError(http.StatusUnprocessableEntity, KindValidation, "INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrency   = NewDomainError(http.StatusConflict, KindModel, "CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

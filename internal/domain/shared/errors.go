package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Dispatch outcome errors

// TransportError is a network failure or a non-2xx response from the game service.
// Detail keeps the raw status/body for logs; users only see UserMessage.
type TransportError struct {
	*DomainError
	Action     string
	StatusCode int
	Detail     string
	Err        error
}

func NewTransportError(action string, statusCode int, detail string, err error) *TransportError {
	msg := fmt.Sprintf("%s failed: HTTP %d", action, statusCode)
	if statusCode == 0 {
		msg = fmt.Sprintf("%s failed: %v", action, err)
	}
	return &TransportError{
		DomainError: &DomainError{Message: msg},
		Action:      action,
		StatusCode:  statusCode,
		Detail:      detail,
		Err:         err,
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage is the generic text shown for any transport failure
func (e *TransportError) UserMessage() string {
	return "The request could not be completed. Please try again."
}

// BusinessRejection is a 2xx response whose body carries a refusal instead of the success marker
type BusinessRejection struct {
	*DomainError
	Action string
	Reason string
}

func NewBusinessRejection(action, reason string) *BusinessRejection {
	return &BusinessRejection{
		DomainError: &DomainError{Message: reason},
		Action:      action,
		Reason:      reason,
	}
}

// SchemaViolationError means a fetched payload did not have the expected shape
type SchemaViolationError struct {
	*DomainError
	Resource string
	Detail   string
}

func NewSchemaViolationError(resource, detail string) *SchemaViolationError {
	return &SchemaViolationError{
		DomainError: &DomainError{Message: fmt.Sprintf("unexpected %s payload: %s", resource, detail)},
		Resource:    resource,
		Detail:      detail,
	}
}

// DispatchInProgressError is returned when the same action is already in flight
type DispatchInProgressError struct {
	*DomainError
	Action string
}

func NewDispatchInProgressError(action string) *DispatchInProgressError {
	return &DispatchInProgressError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s is already in progress", action)},
		Action:      action,
	}
}

// IneligibleError means an operation is not offered in the vessel's current situation
type IneligibleError struct {
	*DomainError
	Operation string
	Reason    string
}

func NewIneligibleError(operation, reason string) *IneligibleError {
	return &IneligibleError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s unavailable: %s", operation, reason)},
		Operation:   operation,
		Reason:      reason,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

package service

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below, so callers can use errors.Is
// without caring about the message.
var (
	// ErrAuthentication is matched by every *AuthenticationError.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrAuthentication = errors.New("authentication failed")

	// ErrBusinessRule is matched by every *BusinessRuleError.
	ErrBusinessRule = errors.New("business rule violated")

	// ErrNotOwned indicates a resource belongs to another account.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another account")

	// ErrEmailTaken is the cause of the business rule error returned for a
	// duplicate email. API layer should map this to HTTP 409 Conflict.
	ErrEmailTaken = errors.New("email already registered")
)

// Messages surfaced to clients.
const (
	MsgAccountNotFound = "account not found for supplied email"
	MsgInvalidPassword = "invalid password"
	MsgEmailTaken      = "an account already exists with this email"

	MsgInvalidDescription = "enter a valid description"
	MsgInvalidMonth       = "enter a valid month"
	MsgInvalidYear        = "enter a valid year"
	MsgMissingAccount     = "enter an account"
	MsgInvalidAmount      = "enter a valid amount"
	MsgMissingEntryType   = "enter an entry type"
)

// AuthenticationError reports a failed login. Message says which check
// failed.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Unwrap returns ErrAuthentication.
func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// BusinessRuleError reports an operation rejected by a domain rule.
type BusinessRuleError struct {
	Message string
	Err     error
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// Unwrap returns ErrBusinessRule and, when set, the underlying cause.
func (e *BusinessRuleError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBusinessRule}
	}
	return []error{ErrBusinessRule, e.Err}
}

// NewBusinessRuleError creates a BusinessRuleError. err may be nil.
func NewBusinessRuleError(message string, err error) *BusinessRuleError {
	return &BusinessRuleError{Message: message, Err: err}
}

// ServiceError wraps an unexpected failure with the service and operation
// in which it happened.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

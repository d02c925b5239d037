package services

import (
	"errors"
	"fmt"

	"eventhub-backend/internal/repositories"
)

type ErrorCode string

const (
	ErrValidation    ErrorCode = "VALIDATION_ERROR"
	ErrDuplicate     ErrorCode = "DUPLICATE"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrConflict      ErrorCode = "CONFLICT"
	ErrUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrForbidden     ErrorCode = "FORBIDDEN"
	ErrPaymentFailed ErrorCode = "PAYMENT_FAILED"
	ErrStorage       ErrorCode = "STORAGE_ERROR"
	ErrUnexpected    ErrorCode = "UNEXPECTED"
)

// ServiceError carries a caller-facing message and a code the transport layer
// maps to a status. Details holds the underlying cause and is never shown to
// clients.
type ServiceError struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
	Details error     `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Message, e.Code, e.Details)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Code)
}

func (e *ServiceError) Unwrap() error { return e.Details }

func NewServiceError(message string, code ErrorCode, details error) *ServiceError {
	return &ServiceError{Message: message, Code: code, Details: details}
}

func validationError(message string) error {
	return NewServiceError(message, ErrValidation, nil)
}

func duplicateError(message string) error {
	return NewServiceError(message, ErrDuplicate, nil)
}

func conflictError(message string) error {
	return NewServiceError(message, ErrConflict, nil)
}

func forbiddenError(message string) error {
	return NewServiceError(message, ErrForbidden, nil)
}

func storageError(message string, err error) error {
	return NewServiceError(message, ErrStorage, err)
}

// lookupError turns a repository lookup failure into NotFound or Storage.
func lookupError(notFoundMessage string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return NewServiceError(notFoundMessage, ErrNotFound, err)
	}
	return storageError("failed to read data", err)
}

// passThrough keeps ServiceErrors returned from inside a transaction and
// wraps anything else as a storage failure.
func passThrough(message string, err error) error {
	if err == nil {
		return nil
	}
	var serr *ServiceError
	if errors.As(err, &serr) {
		return serr
	}
	return storageError(message, err)
}

func ErrorCodeOf(err error) ErrorCode {
	var serr *ServiceError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ""
}

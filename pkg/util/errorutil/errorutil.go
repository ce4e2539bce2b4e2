package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sigma-platform/authentication/internal/domain"
)

// DomainError standardizes errors returned to transport callers.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewTooManyRequests(message string) error {
	return NewDomainError("TOO_MANY_REQUESTS", message, http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError classifies err. Credential and token failures share one message so
// a response never tells whether an email is registered.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return NewDomainError("UNAUTHORIZED", domain.ErrInvalidCredentials.Error(), http.StatusUnauthorized, nil)
	case errors.Is(err, domain.ErrInvalidToken):
		return NewDomainError("UNAUTHORIZED", "unauthenticated", http.StatusUnauthorized, nil)
	case errors.Is(err, domain.ErrAdminExists):
		return NewDomainError("CONFLICT", "email already exists", http.StatusConflict, nil)
	case errors.Is(err, domain.ErrTableOccupied):
		return NewDomainError("CONFLICT", domain.ErrTableOccupied.Error(), http.StatusConflict, nil)
	case errors.Is(err, domain.ErrUnsupportedStrategy):
		return NewDomainError("VALIDATION_FAILED", domain.ErrUnsupportedStrategy.Error(), http.StatusBadRequest, nil)
	}

	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}


package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced to clients.
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
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
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

// NewInvalidInput reports a well-formed request whose values an operation cannot accept.
func NewInvalidInput(message string) error {
	return NewDomainError(CodeInvalidInput, message, http.StatusBadRequest, nil)
}

// NewAlreadyExists reports a registration conflict. It is a plain client error.
func NewAlreadyExists(message string) error {
	return NewDomainError(CodeAlreadyExists, message, http.StatusBadRequest, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid credentials", http.StatusUnauthorized, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func fromFiberError(err *fiber.Error) *DomainError {
	switch {
	case err.Code == http.StatusNotFound:
		return &DomainError{Code: CodeNotFound, Message: err.Message, HTTPStatus: err.Code}
	case err.Code == http.StatusMethodNotAllowed:
		return &DomainError{Code: CodeMethodNotAllowed, Message: err.Message, HTTPStatus: err.Code}
	case err.Code == http.StatusUnauthorized:
		return &DomainError{Code: CodeUnauthorized, Message: err.Message, HTTPStatus: err.Code}
	case err.Code >= 400 && err.Code < 500:
		return &DomainError{Code: CodeValidationFailed, Message: err.Message, HTTPStatus: err.Code}
	default:
		return &DomainError{Code: CodeInternal, Message: "internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
	}
}

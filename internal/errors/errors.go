package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	// Validation errors
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound  = "NOT_FOUND"
	ErrCodeForbidden = "FORBIDDEN"

	// Store errors
	ErrCodeStore = "STORE_ERROR"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is a coded application error. Two AppErrors match under
// errors.Is when their codes are equal.
type AppError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewAppError creates a new AppError
func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewAppErrorWithDetails creates a new AppError with details
func NewAppErrorWithDetails(code, message string, details interface{}) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// Sentinels for errors.Is checks.
var (
	ErrValidation   = NewAppError(ErrCodeValidation, "validation failed")
	ErrInvalidInput = NewAppError(ErrCodeInvalidInput, "invalid input")
	ErrNotFound     = NewAppError(ErrCodeNotFound, "resource not found")
	ErrForbidden    = NewAppError(ErrCodeForbidden, "access denied")
	ErrStore        = NewAppError(ErrCodeStore, "store operation failed")
	ErrInternal     = NewAppError(ErrCodeInternalError, "internal error")
	ErrUnavailable  = NewAppError(ErrCodeServiceUnavailable, "service unavailable")
)

// Validation reports rejected input. Nothing has been written.
func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

// ValidationWithDetails attaches per-field detail to a validation error.
func ValidationWithDetails(message string, details interface{}) *AppError {
	return NewAppErrorWithDetails(ErrCodeValidation, message, details)
}

// Store wraps a backing-store failure.
func Store(op string, err error) *AppError {
	return &AppError{Code: ErrCodeStore, Message: op, Err: err}
}

func NotFound(message string) *AppError {
	if message == "" {
		message = "resource not found"
	}
	return NewAppError(ErrCodeNotFound, message)
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return NewAppError(ErrCodeForbidden, message)
}

func Unavailable(message string) *AppError {
	if message == "" {
		message = "service unavailable"
	}
	return NewAppError(ErrCodeServiceUnavailable, message)
}

// Code extracts the code of the first AppError in err's chain, or
// ErrCodeInternalError.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return stderrors.Is(err, ErrValidation)
}

// IsStore reports whether err is a store error.
func IsStore(err error) bool {
	return stderrors.Is(err, ErrStore)
}

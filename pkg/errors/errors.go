package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies application errors for the API layer.
type ErrorCode string

const (
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	CodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"
	CodeOrderNotFound   ErrorCode = "ORDER_NOT_FOUND"
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeEmptyBasket     ErrorCode = "EMPTY_BASKET"
	CodeOrderState      ErrorCode = "INVALID_ORDER_STATE"
)

// AppError is the application-level error carried between the service and
// API layers. HTTP status mapping stays in the API layer.
type AppError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // per-field validation messages
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches an application code to an underlying error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError   { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError     { return New(CodeNotFound, message) }
func Internal(message string) *AppError     { return New(CodeInternal, message) }
func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message) }
func Forbidden(message string) *AppError    { return New(CodeForbidden, message) }
func Conflict(message string) *AppError     { return New(CodeConflict, message) }

// Validation creates a validation error with per-field messages. Field
// messages are returned to the caller verbatim, so they must not leak
// internals.
func Validation(message string, fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Fields: fields}
}

func ProductNotFound() *AppError { return New(CodeProductNotFound, "product not found") }
func OrderNotFound() *AppError   { return New(CodeOrderNotFound, "order not found") }
func UserNotFound() *AppError    { return New(CodeUserNotFound, "user not found") }
func EmptyBasket() *AppError     { return New(CodeEmptyBasket, "basket is empty") }

// Is reports whether err carries the given application error code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError converts any error to an AppError, wrapping unknown errors as
// internal so their messages never reach clients.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

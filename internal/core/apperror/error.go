// Package apperror provides structured error handling for the POS client.
// Every failure that reaches the UI boundary is an AppError so the caller can
// decide how to display it without inspecting transport details.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors
	CodeInternal = "INTERNAL_ERROR"
	CodeTimeout  = "TIMEOUT_ERROR"

	// Local validation, raised before any network call
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Business rule violations
	CodeBusinessRule = "BUSINESS_RULE_VIOLATION"
	CodeZeroPrice    = "ZERO_PRICE"
	CodeInFlight     = "OPERATION_IN_PROGRESS"

	// Remote call failures
	CodeTransport      = "TRANSPORT_ERROR"
	CodeSessionExpired = "SESSION_EXPIRED"
	CodeServer         = "SERVER_ERROR"
	CodeDecode         = "DECODE_ERROR"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict = "CONFLICT"
)

// User-facing messages shared by the client and the dev backend.
const (
	MsgCannotConnect   = "Cannot connect to the server. Please check the settings and network connection"
	MsgSessionExpired  = "Your session has expired. Please login again."
	MsgDecodeFailed    = "An error occurred while processing the server response"
	MsgZeroPrice       = "cannot compute quantity for zero-priced product"
	MsgRequestTimedOut = "The server took too long to respond. Please try again."
)

// AppError is the standard error type for the client.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field, status, ids...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the status received from (or suggested to) the server
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewBusinessRule creates a business rule violation error (422)
func NewBusinessRule(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewZeroPrice is returned when a variable-priced product has no usable unit price.
func NewZeroPrice(productID int64) *AppError {
	return NewBusinessRule(CodeZeroPrice, MsgZeroPrice).WithDetail("product_id", productID)
}

// NewInFlight is returned when the same operation is already waiting on the server.
func NewInFlight(operation string) *AppError {
	return &AppError{
		Code:       CodeInFlight,
		Message:    "Operation already in progress",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"operation": operation},
	}
}

// NewTransport wraps an unreachable host, DNS or connection failure.
func NewTransport(err error) *AppError {
	return &AppError{
		Code:       CodeTransport,
		Message:    MsgCannotConnect,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewTimeout wraps a request that exceeded its deadline.
func NewTimeout(err error) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    MsgRequestTimedOut,
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

// NewSessionExpired is returned for 401/403 responses.
func NewSessionExpired(status int) *AppError {
	return &AppError{
		Code:       CodeSessionExpired,
		Message:    MsgSessionExpired,
		HTTPStatus: status,
	}
}

// NewServer carries a message reported by the backend verbatim.
func NewServer(status int, message string) *AppError {
	return &AppError{
		Code:       CodeServer,
		Message:    message,
		HTTPStatus: status,
	}
}

// NewUnexpectedStatus is used when the backend error body could not be parsed.
func NewUnexpectedStatus(status int) *AppError {
	return NewServer(status,
		fmt.Sprintf("An unexpected error occurred (Status: %d). Please try again.", status))
}

// NewDecode wraps a malformed or unexpected response body.
func NewDecode(err error) *AppError {
	return &AppError{
		Code:       CodeDecode,
		Message:    MsgDecodeFailed,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewInternal creates an internal error (hides details from the user)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

// IsValidation checks if error is CodeValidation
func IsValidation(err error) bool { return HasCode(err, CodeValidation) }

// IsTransport checks if error is CodeTransport
func IsTransport(err error) bool { return HasCode(err, CodeTransport) }

// IsSessionExpired checks if error is CodeSessionExpired
func IsSessionExpired(err error) bool { return HasCode(err, CodeSessionExpired) }

// IsInFlight checks if error is CodeInFlight
func IsInFlight(err error) bool { return HasCode(err, CodeInFlight) }

// UserMessage returns the text to show for err.
// Non-AppErrors are reduced to their Error() string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

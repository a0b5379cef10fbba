package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden          = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Webhook error types. Verification problems, including a missing secret on
// our side, all map to 400.
var (
	ErrNoSignature        = New(http.StatusBadRequest, "No signature", nil)
	ErrSecretNotSet       = New(http.StatusBadRequest, "Webhook secret is not set", nil)
	ErrVerificationFailed = New(http.StatusBadRequest, "Webhook signature verification failed", nil)
)

// StockUpdateFailed reports a content-store write failure for one product.
// It is fatal for the whole invocation: no order may be created for a session
// whose stock could not be reconciled.
func StockUpdateFailed(productID string, err error) *Error {
	return New(http.StatusInternalServerError, fmt.Sprintf("Failed to update stock for product %s", productID), err)
}

// OrderCreationFailed reports a failure of the final order persistence step.
func OrderCreationFailed(err error) *Error {
	return New(http.StatusInternalServerError, "Error creating order", err)
}

// HTTPStatus returns the HTTP status code carried by err, or 500 when err is
// not an application error.
func HTTPStatus(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return http.StatusInternalServerError
}

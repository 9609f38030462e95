// Package weberror renders service errors the way the proxy does: a JSON
// payload carrying a message, the status on the wire.
package weberror

import (
	"fmt"
	"net/http"
)

type (
	// HTTPCoder interface is implemented by application errors.
	HTTPCoder interface {
		// HTTPCode return the HTTP status code for the given error.
		HTTPCode() int
	}

	// Error is the payload rendered in case of error.
	Error struct {
		Code    int    `json:"-"`
		Message string `json:"message"`
	}
)

// StatusCode the known HTTP status for the given err. If unknown, it returns 500.
func StatusCode(err error) int {
	if hc, ok := err.(HTTPCoder); ok {
		return hc.HTTPCode()
	}
	return http.StatusInternalServerError
}

// New returns a new Error.
func New(code int, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NotFound returns a 404 Error.
func NotFound(message string) error {
	return New(http.StatusNotFound, message)
}

// Conflict returns a 409 Error.
func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

// BadRequest returns a 400 Error.
func BadRequest(message string) error {
	return New(http.StatusBadRequest, message)
}

// Internal returns a 500 Error.
func Internal(message string) error {
	return New(http.StatusInternalServerError, message)
}

// Error stringifies the error.
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// HTTPCode returns the HTTP status code.
func (e *Error) HTTPCode() int {
	return e.Code
}

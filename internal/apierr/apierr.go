package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "validation_failed", fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, "unauthorized", fmt.Errorf(format, args...))
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(http.StatusForbidden, "forbidden", fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf(format, args...))
}

// Precondition marks a state-machine violation, like converting a
// submission that was never approved.
func Precondition(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, "precondition_violation", fmt.Errorf(format, args...))
}

// StatusOf maps any error to an HTTP status, defaulting to 400 for
// plain errors surfaced by services.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status
	}
	return http.StatusBadRequest
}

func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	return "bad_request"
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return NewAppError(
		"NOT_FOUND",
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound,
		err,
	)
}

func BadRequest(message string, err error) *AppError {
	return NewAppError("BAD_REQUEST", message, http.StatusBadRequest, err)
}

func Unauthorized(message string, err error) *AppError {
	if message == "" {
		message = "Unauthorized access"
	}
	return NewAppError("UNAUTHORIZED", message, http.StatusUnauthorized, err)
}

func Forbidden(message string, err error) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return NewAppError("FORBIDDEN", message, http.StatusForbidden, err)
}

func Conflict(message string, err error) *AppError {
	return NewAppError("CONFLICT", message, http.StatusConflict, err)
}

func Internal(message string, err error) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return NewAppError("INTERNAL", message, http.StatusInternalServerError, err)
}

func TooManyRequests(message string, err error) *AppError {
	if message == "" {
		message = "Too many requests"
	}
	return NewAppError("TOO_MANY_REQUESTS", message, http.StatusTooManyRequests, err)
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

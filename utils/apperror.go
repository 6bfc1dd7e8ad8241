package utils

import (
	"errors"
	"net/http"
)

// AppError is a business failure with a machine-readable code and an HTTP
// status. Services return these for rule violations; anything else that
// reaches a controller is treated as internal.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

func ErrValidation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", message)
}

func ErrUnauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func ErrForbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message)
}

func ErrNotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message)
}

func ErrInvalidState(message string) *AppError {
	return NewAppError(http.StatusConflict, "INVALID_STATE", message)
}

func ErrInternal(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL", message)
}

// AsAppError unwraps err into an AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Package apperror định nghĩa domain error có HTTP status gắn kèm.
// Các domain khai báo sentinel errors bằng package này, error normalizer
// ở response layer map thẳng sang status + message.
package apperror

import "net/http"

// AppError là error có explicit HTTP status
type AppError struct {
	Status  int
	Message string
	Err     error // underlying cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap giữ nguyên status/message nhưng đính kèm cause
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{Status: e.Status, Message: e.Message, Err: err}
}

// Is cho phép errors.Is so sánh theo status + message
// (sentinel và bản Wrap của nó match nhau)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

func New(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

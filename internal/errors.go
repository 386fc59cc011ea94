package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeDuplicate    ErrorType = "DUPLICATE"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRank      ErrorCode = "INVALID_RANK"

	ErrCodeManagerNotFound ErrorCode = "MANAGER_NOT_FOUND"
	ErrCodeRoundNotFound   ErrorCode = "ROUND_NOT_FOUND"

	ErrCodeDuplicateUsername  ErrorCode = "DUPLICATE_USERNAME"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

// AppError is the error shape every layer below the HTTP boundary returns.
// StatusCode and the validation messages drive the response encoding in the
// transport layer: validation errors render as 422 {"errors": [...]}, every
// other class renders as {"message": "..."}.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Messages   []string  `json:"messages,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// IsValidation reports whether the error should render in the field-message
// list format.
func (e *AppError) IsValidation() bool {
	return e.Type == ErrorTypeValidation
}

func NewValidationError(messages ...string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "validation failed",
		Messages:   messages,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewDuplicateError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeDuplicate,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrManagerNotFound = NewNotFoundError("manager not found", ErrCodeManagerNotFound)
	ErrRoundNotFound   = NewNotFoundError("inspection round not found", ErrCodeRoundNotFound)

	ErrDuplicateUsername  = NewDuplicateError("username already exists", ErrCodeDuplicateUsername)
	ErrInvalidCredentials = NewUnauthorizedError("invalid credentials", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	if e.IsValidation() {
		return json.Marshal(struct {
			Errors []string `json:"errors"`
		}{Errors: e.Messages})
	}
	return json.Marshal(struct {
		Message string `json:"message"`
	}{Message: e.Message})
}

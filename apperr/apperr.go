package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error carrying a code the HTTP layer can map to a status and a banner.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

const (
	CodeUploadFailed  = "UPLOAD_FAILED"
	CodeMissingAPIKey = "MISSING_API_KEY"
	CodeAppError      = "APP_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternal      = "INTERNAL_ERROR"
)

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

func Wrapf(err error, code, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Code returns the code of the outermost AppError in err's chain, or INTERNAL_ERROR.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code string) bool {
	return err != nil && Code(err) == code
}

// Status maps an error code to the HTTP status the API answers with.
func Status(err error) int {
	switch Code(err) {
	case CodeUploadFailed, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMissingAPIKey:
		return http.StatusServiceUnavailable
	case CodeAppError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func UploadFailed(cause error) error {
	return Wrap(cause, CodeUploadFailed, "Error")
}

func MissingAPIKey() *AppError {
	return New(CodeMissingAPIKey, "🔑 Missing GOOGLE_API_KEY!")
}

func AppFailure(cause error) error {
	return Wrap(cause, CodeAppError, "⚠️ App Error")
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
